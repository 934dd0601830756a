package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"giftcard-backend/internal/models"

	_ "github.com/lib/pq"
)

// ErrOrderNotFound is returned by GetOrder for an unknown id.
var ErrOrderNotFound = errors.New("order not found")

// Listing bounds, matching the admin list view.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

const orderColumns = `id, name, email, phone, occasion, style, recipient, main_text,
		due_date, notes, consent_portfolio, photo_count, photo_entries, created_at`

// Client wraps the Postgres connection holding the orders table.
type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Client) Close() error {
	return c.db.Close()
}

// InsertOrder writes one order row. Orders are immutable; there is no
// update path.
func (c *Client) InsertOrder(ctx context.Context, order *models.Order) error {
	consent := 0
	if order.ConsentPortfolio {
		consent = 1
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO orders
		(id, name, email, phone, occasion, style, recipient, main_text,
		 due_date, notes, consent_portfolio, photo_count, photo_entries, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, order.ID, order.Name, order.Email, order.Phone, order.Occasion, order.Style,
		order.Recipient, order.MainText, order.DueDate, order.Notes,
		consent, order.PhotoCount, order.PhotoEntries, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// ListOrders returns the most recent orders, newest first. The limit is
// clamped to MaxListLimit; non-positive values fall back to the default.
func (c *Client) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var consent int
	err := row.Scan(
		&order.ID, &order.Name, &order.Email, &order.Phone, &order.Occasion,
		&order.Style, &order.Recipient, &order.MainText, &order.DueDate,
		&order.Notes, &consent, &order.PhotoCount, &order.PhotoEntries,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.ConsentPortfolio = consent != 0
	return &order, nil
}
