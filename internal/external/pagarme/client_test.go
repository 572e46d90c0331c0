package pagarme

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"disputedesk/internal/domain/defense"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCharge(t *testing.T) {
	t.Run("maps card details", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/core/v5/charges/ch_1", r.URL.Path)
			user, _, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "sk_test", user)
			_, _ = w.Write([]byte(`{
				"id": "ch_1",
				"last_transaction": {"card": {"brand": "mastercard", "last_four_digits": "4242"}}
			}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "sk_test", nil)

		charge, err := c.GetCharge(context.Background(), "ch_1")

		require.NoError(t, err)
		assert.Equal(t, "ch_1", charge.ID)
		assert.Equal(t, "mastercard", charge.CardBrand)
		assert.Equal(t, "4242", charge.CardLastFour)
	})

	t.Run("gateway error is surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "charge not found"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "sk_test", nil)

		_, err := c.GetCharge(context.Background(), "ch_missing")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "charge not found")
	})
}

func TestSubmitDefense(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/core/v5/disputes/cb_1/defense", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"id": "def_9", "status": "received"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test", nil)

	resp, err := c.SubmitDefense(context.Background(), defense.Record{
		ID:        "d1",
		DisputeID: "cb_1",
		Dossier:   "texto da defesa",
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "def_9", "status": "received"}`, string(resp))
}
