package handlers

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"giftcard-backend/internal/database"
	"giftcard-backend/internal/middleware"
	"giftcard-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// OrderLister provides the recent orders for the admin list view.
type OrderLister interface {
	ListOrders(ctx context.Context, limit int) ([]models.Order, error)
}

type OrdersHandler struct {
	orders OrderLister
	tmpl   *template.Template
}

func NewOrdersHandler(orders OrderLister) *OrdersHandler {
	return &OrdersHandler{
		orders: orders,
		tmpl:   template.Must(template.New("orders").Parse(ordersPage)),
	}
}

type photoView struct {
	ImageURL    string
	DownloadURL string
	Caption     string
}

type orderView struct {
	models.Order
	Phone   string
	DueDate string
	Notes   string
	ZipURL  string
	Photos  []photoView
}

type ordersPageData struct {
	Orders []orderView
	Count  int
}

// List renders the recent orders as an HTML page with photo previews,
// per-photo download links, and a ZIP link per order.
func (h *OrdersHandler) List(c *gin.Context) {
	limit := database.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), limit)
	if err != nil {
		reqID := middleware.GetRequestID(c)
		log.Printf("[%s] order listing failed: %v", reqID, err)
		c.String(http.StatusInternalServerError, "Server error (ref: %s)", reqID)
		return
	}

	adminKey := c.Query("key")
	data := ordersPageData{Count: len(orders)}
	for i, order := range orders {
		view := orderView{
			Order:   order,
			Phone:   order.Phone.String,
			DueDate: order.DueDate.String,
			Notes:   order.Notes.String,
			ZipURL: fmt.Sprintf("/api/admin/zip?key=%s&id=%s&n=%d",
				url.QueryEscape(adminKey), url.QueryEscape(order.ID), i+1),
		}

		// A manifest that fails to decode renders as an order without photos
		// rather than breaking the whole page.
		entries, err := order.Manifest()
		if err != nil {
			log.Printf("order %s: %v", order.ID, err)
		}
		for _, entry := range entries {
			imageURL := fmt.Sprintf("/api/admin/file?k=%s&key=%s",
				url.QueryEscape(entry.Key), url.QueryEscape(adminKey))
			view.Photos = append(view.Photos, photoView{
				ImageURL:    imageURL,
				DownloadURL: imageURL + "&download=1&filename=" + url.QueryEscape(entry.Filename),
				Caption:     entry.Caption,
			})
		}

		data.Orders = append(data.Orders, view)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.tmpl.Execute(c.Writer, data); err != nil {
		log.Printf("failed to render order list: %v", err)
	}
}

const ordersPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Orders</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", "Noto Sans TC", sans-serif; max-width: 900px; margin: 2rem auto; padding: 0 1rem; color: #212529; background: #f1f3f5; }
    .topbar { display: flex; justify-content: space-between; align-items: center; border-bottom: 1px solid #dee2e6; padding-bottom: 1rem; }
    .muted { color: #6c757d; font-size: 0.9rem; }
    .card { border: 1px solid #dee2e6; border-radius: 12px; margin: 1.5rem 0; background: #fff; overflow: hidden; }
    .card header { display: flex; justify-content: space-between; gap: 1rem; padding: 1.25rem; background: #f8f9fa; border-bottom: 1px solid #dee2e6; }
    .card section { padding: 1.25rem; }
    .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; margin-bottom: 1rem; }
    .grid label, .text label { display: block; font-size: 0.8rem; color: #6c757d; margin-bottom: 0.25rem; }
    .text p { margin: 0 0 1rem; white-space: pre-wrap; border: 1px solid #dee2e6; padding: 0.75rem; border-radius: 6px; background: #f8f9fa; }
    .photos { display: grid; grid-template-columns: repeat(auto-fill, minmax(150px, 1fr)); gap: 1rem; padding: 1.25rem; border-top: 1px solid #e9ecef; }
    figure { margin: 0; border: 1px solid #dee2e6; border-radius: 8px; padding: 0.5rem; }
    figure img { width: 100%; height: 120px; object-fit: cover; border-radius: 6px; display: block; }
    figcaption { font-size: 0.75rem; color: #6c757d; margin-top: 0.5rem; }
  </style>
</head>
<body>
  <div class="topbar">
    <h1>Orders</h1>
    <div class="muted">{{.Count}} most recent</div>
  </div>
  {{range .Orders}}
  <article class="card">
    <header>
      <div><strong>{{.Name}}</strong> <span class="muted">({{.Email}})</span> for <strong>{{.Recipient}}</strong></div>
      <div class="muted">{{.ID}}<br>{{.CreatedAt}}</div>
    </header>
    <section>
      <div class="grid">
        <div><label>Occasion</label>{{.Occasion}}</div>
        <div><label>Style</label>{{.Style}}</div>
        <div><label>Phone</label>{{if .Phone}}{{.Phone}}{{else}}<i>(not provided)</i>{{end}}</div>
        <div><label>Due date</label>{{if .DueDate}}{{.DueDate}}{{else}}<i>(not specified)</i>{{end}}</div>
      </div>
      <div class="text">
        <label>Message</label>
        <p>{{.MainText}}</p>
        <label>Notes</label>
        <p>{{if .Notes}}{{.Notes}}{{else}}<i>(none)</i>{{end}}</p>
      </div>
      <div class="muted">Portfolio consent: {{if .ConsentPortfolio}}yes{{else}}no{{end}}
        &middot; {{.PhotoCount}} photo(s) &middot; <a href="{{.ZipURL}}">download all as ZIP</a></div>
    </section>
    {{if .Photos}}
    <div class="photos">
      {{range .Photos}}
      <figure>
        <img src="{{.ImageURL}}" loading="lazy" alt="{{.Caption}}">
        <figcaption>{{if .Caption}}{{.Caption}}{{else}}<i>(no caption)</i>{{end}}
          <a href="{{.DownloadURL}}" download>&darr;</a></figcaption>
      </figure>
      {{end}}
    </div>
    {{end}}
  </article>
  {{else}}
  <p class="muted">No orders yet.</p>
  {{end}}
</body>
</html>
`
