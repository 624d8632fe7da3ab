package realtime

import (
	"fmt"
	"log"
	"strings"

	"restaurant_manager/model"
)

// ContactDirectory resolves a customer id to a deliverable address.
type ContactDirectory interface {
	GetContact(customerId string) (string, bool)
}

// Sender delivers one notification. Failures are the sender's problem to
// describe, the notifier only logs them.
type Sender interface {
	Send(address, subject, body string) error
}

// Notifier mails a status update for every changed order that belongs to a
// known customer. It runs after the ledger write and never blocks or fails
// the update path.
type Notifier struct {
	directory ContactDirectory
	sender    Sender
}

func NewNotifier(directory ContactDirectory, sender Sender) *Notifier {
	return &Notifier{directory: directory, sender: sender}
}

// NotifyChanged processes orders independently: an anonymous order, an
// unresolvable contact or a delivery error never stops the remaining ones.
func (n *Notifier) NotifyChanged(restaurantId string, changed []model.Order) {
	for _, order := range changed {
		if order.CustomerId == "" {
			continue // walk-in order, nothing to notify
		}
		address, ok := n.directory.GetContact(order.CustomerId)
		if !ok {
			continue
		}
		subject := fmt.Sprintf("Order %s is now %s", order.Id, order.Status)
		if err := n.sender.Send(address, subject, statusMailBody(order)); err != nil {
			log.Printf("order notification failed for %s (order %s): %v", restaurantId, order.Id, err)
		}
	}
}

func statusMailBody(order model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your order %s is now %s.\n\n", order.Id, order.Status)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %dx %s\n", item.Quantity, item.Name)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.DiscountPrice)
	return b.String()
}
