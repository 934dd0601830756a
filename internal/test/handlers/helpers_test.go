package handlers_test

import (
	"context"
	"fmt"

	"giftcard-backend/internal/database"
	"giftcard-backend/internal/models"
)

// captureOrders records inserted rows and serves them back by id.
type captureOrders struct {
	orders  []*models.Order
	pingErr error
}

func (c *captureOrders) InsertOrder(ctx context.Context, order *models.Order) error {
	c.orders = append(c.orders, order)
	return nil
}

func (c *captureOrders) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	for _, order := range c.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", database.ErrOrderNotFound, id)
}

func (c *captureOrders) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(c.orders))
	for _, order := range c.orders {
		orders = append(orders, *order)
		if len(orders) == limit {
			break
		}
	}
	return orders, nil
}

func (c *captureOrders) Ping(ctx context.Context) error {
	return c.pingErr
}
