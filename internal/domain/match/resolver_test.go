package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"disputedesk/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func resolver(t *testing.T) (*Resolver, *MockOrderLookup) {
	t.Helper()

	lookup := NewMockOrderLookup(gomock.NewController(t))
	return NewResolver(lookup, 5.0, time.Second), lookup
}

func orderRecord(id, name, email, total string) order.Record {
	return order.Record{ID: id, Name: name, Email: email, TotalPrice: total}
}

func TestWithinTolerance(t *testing.T) {
	t.Run("boundary is inclusive at exactly 5 percent", func(t *testing.T) {
		assert.True(t, WithinTolerance(105.00, 100.00, 5.0))
		assert.True(t, WithinTolerance(95.00, 100.00, 5.0))
	})

	t.Run("rejects just past the boundary", func(t *testing.T) {
		assert.False(t, WithinTolerance(105.01, 100.00, 5.0))
		assert.False(t, WithinTolerance(94.99, 100.00, 5.0))
	})

	t.Run("non-positive reference amount never matches", func(t *testing.T) {
		assert.False(t, WithinTolerance(100, 0, 5.0))
		assert.False(t, WithinTolerance(100, -10, 5.0))
	})
}

func TestResolve_MetadataStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("metadata order number hit concludes the chain", func(t *testing.T) {
		r, lookup := resolver(t)
		found := orderRecord("1", "#4521", "a@x.com", "100.00")
		lookup.EXPECT().GetOrderByName(gomock.Any(), "#4521").Return(&found, nil)

		res := r.Resolve(ctx, map[string]any{"order_number": "#4521"}, "a@x.com", 100)

		require.NotNil(t, res.Order)
		assert.Equal(t, MethodMetadataOrderNumber, res.Method)
		assert.Equal(t, "#4521", res.Order.Name)
		assert.NotEmpty(t, res.Attempts)
	})

	t.Run("metadata strategy wins over a resolvable email", func(t *testing.T) {
		r, lookup := resolver(t)
		byName := orderRecord("1", "#4521", "a@x.com", "100.00")
		lookup.EXPECT().GetOrderByName(gomock.Any(), "4521").Return(&byName, nil)
		// GetOrdersByEmail must not be called: the chain short-circuits.

		res := r.Resolve(ctx, map[string]any{"pedido": "4521"}, "a@x.com", 100)

		assert.Equal(t, MethodMetadataOrderNumber, res.Method)
		assert.Equal(t, "1", res.Order.ID)
	})

	t.Run("metadata miss falls through to email", func(t *testing.T) {
		r, lookup := resolver(t)
		lookup.EXPECT().GetOrderByName(gomock.Any(), "9999").Return(nil, nil)
		byEmail := orderRecord("2", "#2", "a@x.com", "100.00")
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return([]order.Record{byEmail}, nil)

		res := r.Resolve(ctx, map[string]any{"order_number": "9999"}, "a@x.com", 100)

		assert.Equal(t, MethodEmailAmountMatch, res.Method)
		assert.Contains(t, res.Attempts[1], "not found")
	})

	t.Run("lookup error demotes the strategy, chain continues", func(t *testing.T) {
		r, lookup := resolver(t)
		lookup.EXPECT().GetOrderByName(gomock.Any(), "4521").Return(nil, errors.New("platform 500"))
		byEmail := orderRecord("2", "#2", "a@x.com", "100.00")
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return([]order.Record{byEmail}, nil)

		res := r.Resolve(ctx, map[string]any{"order_number": "4521"}, "a@x.com", 100)

		assert.Equal(t, MethodEmailAmountMatch, res.Method)
		assert.Contains(t, res.Attempts[1], "platform 500")
	})
}

func TestResolve_EmailStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("selects order within 5 percent of disputed amount", func(t *testing.T) {
		// dispute cb_1: amount 150.00, no metadata order number.
		// order A total 149.00 (0.67% off), order B total 300.00.
		r, lookup := resolver(t)
		orders := []order.Record{
			orderRecord("A", "#1001", "a@x.com", "149.00"),
			orderRecord("B", "#1002", "a@x.com", "300.00"),
		}
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return(orders, nil)

		res := r.Resolve(ctx, nil, "a@x.com", 150.00)

		require.NotNil(t, res.Order)
		assert.Equal(t, "A", res.Order.ID)
		assert.Equal(t, MethodEmailAmountMatch, res.Method)
		// trail must record both the empty metadata attempt and the email search
		assert.Contains(t, res.Attempts[0], "no order number in metadata")
		assert.Contains(t, res.Attempts[1], "a@x.com")
		assert.Contains(t, res.Attempts[2], "2 order(s) found")
	})

	t.Run("zero orders concludes with none and an auditable trail", func(t *testing.T) {
		r, lookup := resolver(t)
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return([]order.Record{}, nil)

		res := r.Resolve(ctx, nil, "a@x.com", 150.00)

		assert.Nil(t, res.Order)
		assert.Equal(t, MethodNone, res.Method)
		assert.Contains(t, res.Attempts, "email -> 0 orders found")
	})

	t.Run("first in-tolerance order wins the tie", func(t *testing.T) {
		r, lookup := resolver(t)
		orders := []order.Record{
			orderRecord("A", "#1", "a@x.com", "151.00"),
			orderRecord("B", "#2", "a@x.com", "150.00"),
		}
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return(orders, nil)

		res := r.Resolve(ctx, nil, "a@x.com", 150.00)

		assert.Equal(t, "A", res.Order.ID)
		assert.Equal(t, MethodEmailAmountMatch, res.Method)
	})

	t.Run("tolerance boundary at exactly 5.00 percent accepted", func(t *testing.T) {
		r, lookup := resolver(t)
		orders := []order.Record{orderRecord("A", "#1", "a@x.com", "105.00")}
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return(orders, nil)

		res := r.Resolve(ctx, nil, "a@x.com", 100.00)

		assert.Equal(t, MethodEmailAmountMatch, res.Method)
	})

	t.Run("5.01 percent deviation falls back to first order", func(t *testing.T) {
		r, lookup := resolver(t)
		orders := []order.Record{orderRecord("A", "#1", "a@x.com", "105.01")}
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return(orders, nil)

		res := r.Resolve(ctx, nil, "a@x.com", 100.00)

		// out of tolerance, so the low-confidence fallback is used and labeled
		assert.Equal(t, MethodEmailFirstOrder, res.Method)
		assert.Equal(t, "A", res.Order.ID)
	})

	t.Run("unknown amount goes straight to first order", func(t *testing.T) {
		r, lookup := resolver(t)
		orders := []order.Record{
			orderRecord("A", "#1", "a@x.com", "10.00"),
			orderRecord("B", "#2", "a@x.com", "20.00"),
		}
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return(orders, nil)

		res := r.Resolve(ctx, nil, "a@x.com", 0)

		assert.Equal(t, MethodEmailFirstOrder, res.Method)
		assert.Equal(t, "A", res.Order.ID)
	})

	t.Run("unparsable totals are skipped", func(t *testing.T) {
		r, lookup := resolver(t)
		orders := []order.Record{
			orderRecord("A", "#1", "a@x.com", "not-a-number"),
			orderRecord("B", "#2", "a@x.com", "150.00"),
		}
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return(orders, nil)

		res := r.Resolve(ctx, nil, "a@x.com", 150.00)

		assert.Equal(t, "B", res.Order.ID)
		assert.Equal(t, MethodEmailAmountMatch, res.Method)
	})

	t.Run("email lookup error yields none", func(t *testing.T) {
		r, lookup := resolver(t)
		lookup.EXPECT().GetOrdersByEmail(gomock.Any(), "a@x.com").Return(nil, errors.New("timeout"))

		res := r.Resolve(ctx, nil, "a@x.com", 150.00)

		assert.Nil(t, res.Order)
		assert.Equal(t, MethodNone, res.Method)
		assert.Contains(t, res.Attempts[len(res.Attempts)-1], "timeout")
	})
}

func TestResolve_NothingToSearchWith(t *testing.T) {
	r, _ := resolver(t)

	res := r.Resolve(context.Background(), nil, "", 150.00)

	assert.Nil(t, res.Order)
	assert.Equal(t, MethodNone, res.Method)
	// the trail distinguishes "nothing to search with" from "searched and found nothing"
	assert.Contains(t, res.Attempts, "no customer email - automatic search impossible")
}

func TestManual(t *testing.T) {
	ctx := context.Background()

	t.Run("bypasses the chain and tags method manual", func(t *testing.T) {
		r, lookup := resolver(t)
		found := orderRecord("1", "#777", "a@x.com", "50.00")
		lookup.EXPECT().GetOrderByName(gomock.Any(), "#777").Return(&found, nil)

		res, err := r.Manual(ctx, "#777")

		require.NoError(t, err)
		assert.Equal(t, MethodManual, res.Method)
		assert.Equal(t, "#777", res.Order.Name)
	})

	t.Run("not found is not an error", func(t *testing.T) {
		r, lookup := resolver(t)
		lookup.EXPECT().GetOrderByName(gomock.Any(), "#777").Return(nil, nil)

		res, err := r.Manual(ctx, "#777")

		require.NoError(t, err)
		assert.Nil(t, res.Order)
		assert.Equal(t, MethodNone, res.Method)
	})

	t.Run("lookup error is surfaced", func(t *testing.T) {
		r, lookup := resolver(t)
		lookup.EXPECT().GetOrderByName(gomock.Any(), "#777").Return(nil, errors.New("platform down"))

		_, err := r.Manual(ctx, "#777")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "platform down")
	})
}
