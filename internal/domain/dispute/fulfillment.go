package dispute

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Platform webhook topics this service acts on. Everything else is the
// ignored variant: acknowledged to stop redelivery, never processed.
const (
	TopicOrdersFulfilled    = "orders/fulfilled"
	TopicFulfillmentsCreate = "fulfillments/create"
)

// ErrIgnoredTopic marks a platform webhook whose topic is outside the
// recognized set.
var ErrIgnoredTopic = errors.New("ignored webhook topic")

// FulfillmentEvent is the normalized form of a relevant platform
// webhook, independent of which topic shape delivered it.
type FulfillmentEvent struct {
	Topic             string    `json:"topic"`
	OrderName         string    `json:"order_name"`
	CustomerEmail     string    `json:"customer_email"`
	TotalPrice        float64   `json:"total_price"`
	FulfillmentStatus string    `json:"fulfillment_status"`
	TrackingNumber    string    `json:"tracking_number,omitempty"`
	TrackingCarrier   string    `json:"tracking_carrier,omitempty"`
	TrackingURL       string    `json:"tracking_url,omitempty"`
	ReceivedAt        time.Time `json:"received_at"`
}

type orderFulfilledPayload struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	TotalPrice        string `json:"total_price"`
	FulfillmentStatus string `json:"fulfillment_status"`
	Fulfillments      []struct {
		TrackingInfo *struct {
			Number  string `json:"number"`
			Company string `json:"company"`
			URL     string `json:"url"`
		} `json:"tracking_info"`
	} `json:"fulfillments"`
}

type fulfillmentCreatePayload struct {
	OrderName       string `json:"order_name"`
	Email           string `json:"email"`
	Customer        *struct {
		Email string `json:"email"`
	} `json:"customer"`
	TotalPrice      string `json:"total_price"`
	Status          string `json:"status"`
	TrackingNumber  string `json:"tracking_number"`
	TrackingCompany string `json:"tracking_company"`
	TrackingURL     string `json:"tracking_url"`
}

// ParseFulfillment decodes a platform webhook body for the given topic
// into the normalized event. The two recognized topics carry different
// shapes; unrecognized topics return ErrIgnoredTopic.
func ParseFulfillment(topic string, raw []byte, now time.Time) (FulfillmentEvent, error) {
	switch topic {
	case TopicOrdersFulfilled:
		var p orderFulfilledPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return FulfillmentEvent{}, fmt.Errorf("decode %s payload: %w", topic, err)
		}

		ev := FulfillmentEvent{
			Topic:             topic,
			OrderName:         p.Name,
			CustomerEmail:     p.Email,
			TotalPrice:        parsePrice(p.TotalPrice),
			FulfillmentStatus: p.FulfillmentStatus,
			ReceivedAt:        now,
		}
		if ev.FulfillmentStatus == "" {
			ev.FulfillmentStatus = "fulfilled"
		}
		if len(p.Fulfillments) > 0 && p.Fulfillments[0].TrackingInfo != nil {
			t := p.Fulfillments[0].TrackingInfo
			ev.TrackingNumber = t.Number
			ev.TrackingCarrier = t.Company
			ev.TrackingURL = t.URL
		}
		return ev, nil

	case TopicFulfillmentsCreate:
		var p fulfillmentCreatePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return FulfillmentEvent{}, fmt.Errorf("decode %s payload: %w", topic, err)
		}

		email := p.Email
		if email == "" && p.Customer != nil {
			email = p.Customer.Email
		}
		status := p.Status
		if status == "" {
			status = "pending"
		}

		return FulfillmentEvent{
			Topic:             topic,
			OrderName:         ensureOrderNamePrefix(p.OrderName),
			CustomerEmail:     email,
			TotalPrice:        parsePrice(p.TotalPrice),
			FulfillmentStatus: status,
			TrackingNumber:    p.TrackingNumber,
			TrackingCarrier:   p.TrackingCompany,
			TrackingURL:       p.TrackingURL,
			ReceivedAt:        now,
		}, nil

	default:
		return FulfillmentEvent{}, fmt.Errorf("%w: %s", ErrIgnoredTopic, topic)
	}
}

// ensureOrderNamePrefix normalizes order names to the "#1234" display
// form; the fulfillments/create topic sends them bare.
func ensureOrderNamePrefix(name string) string {
	if name == "" || strings.HasPrefix(name, "#") {
		return name
	}
	return "#" + name
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
