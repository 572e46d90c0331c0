// Package match reconciles a gateway dispute with the platform order it
// concerns. The two systems share no common identifier, so the resolver
// works through an ordered chain of strategies over partial signals:
// merchant metadata, customer email and approximate amount. Every branch
// records a human-readable attempt so operators can audit why a match
// was or was not made.
package match

import (
	"context"
	"fmt"
	"time"

	"disputedesk/internal/domain/order"
)

//go:generate mockgen -source resolver.go -destination mock_lookup.go -package match

// OrderLookup is the capability the e-commerce platform API provides to
// the resolver.
type OrderLookup interface {
	// GetOrderByName fetches a single order by its human order number
	// ("#1234" or "1234"). Returns nil when no order has that name.
	GetOrderByName(ctx context.Context, name string) (*order.Record, error)
	// GetOrdersByEmail lists all orders placed with the given email, in
	// the platform's return order.
	GetOrdersByEmail(ctx context.Context, email string) ([]order.Record, error)
}

// Method identifies the strategy that produced a match.
type Method string

const (
	MethodMetadataOrderNumber Method = "metadata_order_number"
	MethodEmailAmountMatch    Method = "email_amount_match"
	MethodEmailFirstOrder     Method = "email_first_order"
	MethodManual              Method = "manual"
	MethodNone                Method = "none"
)

// Result is the outcome of a resolution run. Method is MethodNone iff
// Order is nil; Attempts is never empty once a run has completed.
type Result struct {
	Order    *order.Record `json:"order"`
	Method   Method        `json:"method"`
	Attempts []string      `json:"attempts"`
}

// DefaultTolerancePct is the relative amount tolerance used when none is
// configured.
const DefaultTolerancePct = 5.0

// Resolver runs the strategy chain against an OrderLookup.
type Resolver struct {
	lookup       OrderLookup
	tolerancePct float64
	timeout      time.Duration
}

// NewResolver creates a resolver. tolerancePct <= 0 falls back to
// DefaultTolerancePct; timeout bounds each outbound lookup call.
func NewResolver(lookup OrderLookup, tolerancePct float64, timeout time.Duration) *Resolver {
	if tolerancePct <= 0 {
		tolerancePct = DefaultTolerancePct
	}
	return &Resolver{lookup: lookup, tolerancePct: tolerancePct, timeout: timeout}
}

// WithinTolerance reports whether candidate is within the relative
// tolerance of amount: |candidate-amount|/amount <= pct/100, boundary
// inclusive. amount must be positive.
func WithinTolerance(candidate, amount, pct float64) bool {
	if amount <= 0 {
		return false
	}
	diff := candidate - amount
	if diff < 0 {
		diff = -diff
	}
	return diff/amount <= pct/100
}

// Resolve runs the automatic strategy chain in fixed priority order,
// short-circuiting on the first hit:
//
//  1. metadata order number -> exact by-name lookup
//  2. customer email -> amount-tolerance match, else first order
//  3. nothing to search with -> MethodNone
//
// A lookup error or timeout demotes that strategy and the chain
// continues; it never aborts the run.
func (r *Resolver) Resolve(ctx context.Context, metadata map[string]any, customerEmail string, amount float64) Result {
	attempts := []string{}

	if orderNumber := ExtractOrderNumber(metadata); orderNumber != "" {
		attempts = append(attempts, fmt.Sprintf("metadata -> lookup order by name %q", orderNumber))

		found, err := r.getOrderByName(ctx, orderNumber)
		switch {
		case err != nil:
			attempts = append(attempts, fmt.Sprintf("lookup by name %q failed: %v", orderNumber, err))
		case found != nil:
			return Result{Order: found, Method: MethodMetadataOrderNumber, Attempts: attempts}
		default:
			attempts = append(attempts, fmt.Sprintf("%q not found on platform", orderNumber))
		}
	} else {
		attempts = append(attempts, "no order number in metadata")
	}

	if customerEmail == "" {
		attempts = append(attempts, "no customer email - automatic search impossible")
		return Result{Method: MethodNone, Attempts: attempts}
	}

	attempts = append(attempts, fmt.Sprintf("email -> list orders for %q", customerEmail))

	orders, err := r.getOrdersByEmail(ctx, customerEmail)
	if err != nil {
		attempts = append(attempts, fmt.Sprintf("lookup by email failed: %v", err))
		return Result{Method: MethodNone, Attempts: attempts}
	}

	if len(orders) == 0 {
		attempts = append(attempts, "email -> 0 orders found")
		return Result{Method: MethodNone, Attempts: attempts}
	}

	attempts = append(attempts, fmt.Sprintf("email -> %d order(s) found", len(orders)))

	if amount > 0 {
		for i := range orders {
			total, ok := orders[i].Total()
			if !ok {
				continue
			}
			// Tie-break among several in-tolerance orders: first in the
			// platform's return order. The platform does not guarantee a
			// stable order here; this preserves the documented behavior
			// rather than inventing a stronger rule.
			if WithinTolerance(total, amount, r.tolerancePct) {
				return Result{Order: &orders[i], Method: MethodEmailAmountMatch, Attempts: attempts}
			}
		}
		attempts = append(attempts, fmt.Sprintf("no order within %.0f%% of amount - falling back to first order", r.tolerancePct))
	}

	return Result{Order: &orders[0], Method: MethodEmailFirstOrder, Attempts: attempts}
}

// Manual bypasses the automatic chain with an operator-supplied order
// number. Unlike automatic resolution, a lookup failure is surfaced: the
// operator asked for this specific order and needs to know it failed.
func (r *Resolver) Manual(ctx context.Context, orderNumber string) (Result, error) {
	attempts := []string{fmt.Sprintf("manual -> lookup order by name %q", orderNumber)}

	found, err := r.getOrderByName(ctx, orderNumber)
	if err != nil {
		attempts = append(attempts, fmt.Sprintf("lookup by name %q failed: %v", orderNumber, err))
		return Result{Method: MethodNone, Attempts: attempts}, fmt.Errorf("manual lookup %q: %w", orderNumber, err)
	}
	if found == nil {
		attempts = append(attempts, fmt.Sprintf("%q not found on platform", orderNumber))
		return Result{Method: MethodNone, Attempts: attempts}, nil
	}

	return Result{Order: found, Method: MethodManual, Attempts: attempts}, nil
}

func (r *Resolver) getOrderByName(ctx context.Context, name string) (*order.Record, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	return r.lookup.GetOrderByName(ctx, name)
}

func (r *Resolver) getOrdersByEmail(ctx context.Context, email string) ([]order.Record, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	return r.lookup.GetOrdersByEmail(ctx, email)
}

func (r *Resolver) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
