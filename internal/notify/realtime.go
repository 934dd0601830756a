package notify

import (
	"fmt"
	"log"

	"github.com/supabase-community/supabase-go"
)

// Notifier publishes order lifecycle events so the admin dashboard can
// refresh without polling. A nil Notifier is valid and drops every event.
type Notifier struct {
	client *supabase.Client
}

func NewNotifier(supabaseURL, serviceKey string) (*Notifier, error) {
	client, err := supabase.NewClient(supabaseURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Notifier{client: client}, nil
}

// OrderCreated announces a freshly persisted order. Delivery is
// best-effort: a failed publish is logged and never fails the submission.
func (n *Notifier) OrderCreated(orderID string, photoCount int) {
	if n == nil || n.client == nil {
		return
	}

	payload := map[string]any{
		"order_id":    orderID,
		"photo_count": photoCount,
	}
	if err := n.publish("orders", "order_created", payload); err != nil {
		log.Printf("failed to publish order_created for %s: %v", orderID, err)
	}
}

func (n *Notifier) publish(channel, event string, payload map[string]any) error {
	// The Go client has no direct Realtime publish; inserts into the orders
	// table already trigger Realtime on the Supabase side, so explicit
	// publishing stays a hook for channels that need it.
	_ = channel
	_ = event
	_ = payload
	return nil
}
