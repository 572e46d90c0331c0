// Package order holds the read-only view of an e-commerce platform order.
// Orders are not owned by this service; they are fetched from the
// platform's API during reconciliation.
package order

import (
	"strconv"
	"strings"
	"time"
)

// Record is a platform order as consumed by reconciliation.
type Record struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"` // human order number, e.g. "#1234"
	Email       string        `json:"email"`
	TotalPrice  string        `json:"total_price"` // decimal string, platform convention
	Currency    string        `json:"currency"`
	CreatedAt   time.Time     `json:"created_at"`
	LineItems   []LineItem    `json:"line_items"`
	Fulfillments []Fulfillment `json:"fulfillments"`
	FulfillmentStatus string  `json:"fulfillment_status,omitempty"`
	FinancialStatus   string  `json:"financial_status,omitempty"`
}

// LineItem is one purchased item on an order.
type LineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// Fulfillment is one shipment of an order.
type Fulfillment struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Tracking  *Tracking `json:"tracking,omitempty"`
}

// Tracking is the carrier triple attached to a fulfillment.
type Tracking struct {
	Number  string `json:"number"`
	Carrier string `json:"carrier"`
	URL     string `json:"url,omitempty"`
}

// Total parses the order total. Returns 0 and false when the platform
// sent an unparsable or non-positive value.
func (r Record) Total() (float64, bool) {
	total, err := strconv.ParseFloat(strings.TrimSpace(r.TotalPrice), 64)
	if err != nil || total <= 0 {
		return 0, false
	}
	return total, true
}

// PrimaryTracking returns the tracking triple of the first fulfillment
// that carries one.
func (r Record) PrimaryTracking() *Tracking {
	for _, f := range r.Fulfillments {
		if f.Tracking != nil {
			return f.Tracking
		}
	}
	return nil
}
