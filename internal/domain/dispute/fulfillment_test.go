package dispute

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFulfillment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("orders/fulfilled payload", func(t *testing.T) {
		raw := []byte(`{
			"name": "#1234",
			"email": "cliente@example.com",
			"total_price": "149.90",
			"fulfillment_status": "fulfilled",
			"fulfillments": [
				{"tracking_info": {"number": "BR123456789", "company": "Correios", "url": "https://track/BR123456789"}}
			]
		}`)

		ev, err := ParseFulfillment(TopicOrdersFulfilled, raw, now)

		require.NoError(t, err)
		assert.Equal(t, "#1234", ev.OrderName)
		assert.Equal(t, "cliente@example.com", ev.CustomerEmail)
		assert.InDelta(t, 149.90, ev.TotalPrice, 0.001)
		assert.Equal(t, "fulfilled", ev.FulfillmentStatus)
		assert.Equal(t, "BR123456789", ev.TrackingNumber)
		assert.Equal(t, "Correios", ev.TrackingCarrier)
		assert.Equal(t, now, ev.ReceivedAt)
	})

	t.Run("orders/fulfilled without tracking", func(t *testing.T) {
		raw := []byte(`{"name": "#1234", "email": "a@x.com", "total_price": "10.00", "fulfillments": []}`)

		ev, err := ParseFulfillment(TopicOrdersFulfilled, raw, now)

		require.NoError(t, err)
		assert.Empty(t, ev.TrackingNumber)
		assert.Equal(t, "fulfilled", ev.FulfillmentStatus)
	})

	t.Run("fulfillments/create payload", func(t *testing.T) {
		raw := []byte(`{
			"order_name": "1234",
			"customer": {"email": "cliente@example.com"},
			"status": "success",
			"tracking_number": "BR987",
			"tracking_company": "Jadlog",
			"tracking_url": "https://track/BR987"
		}`)

		ev, err := ParseFulfillment(TopicFulfillmentsCreate, raw, now)

		require.NoError(t, err)
		assert.Equal(t, "#1234", ev.OrderName, "bare order name gets the # prefix")
		assert.Equal(t, "cliente@example.com", ev.CustomerEmail)
		assert.Equal(t, "success", ev.FulfillmentStatus)
		assert.Equal(t, "BR987", ev.TrackingNumber)
		assert.Equal(t, "Jadlog", ev.TrackingCarrier)
	})

	t.Run("fulfillments/create top-level email wins", func(t *testing.T) {
		raw := []byte(`{"order_name": "#5", "email": "top@x.com", "customer": {"email": "nested@x.com"}}`)

		ev, err := ParseFulfillment(TopicFulfillmentsCreate, raw, now)

		require.NoError(t, err)
		assert.Equal(t, "top@x.com", ev.CustomerEmail)
		assert.Equal(t, "pending", ev.FulfillmentStatus)
	})

	t.Run("unrecognized topic is ignored", func(t *testing.T) {
		_, err := ParseFulfillment("products/update", []byte(`{}`), now)

		assert.ErrorIs(t, err, ErrIgnoredTopic)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		_, err := ParseFulfillment(TopicOrdersFulfilled, []byte(`not json`), now)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrIgnoredTopic)
	})
}
