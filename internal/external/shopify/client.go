// Package shopify is the e-commerce platform client used by
// reconciliation. It exposes exactly the two lookups the resolver
// needs, mapped onto the platform's Admin REST orders endpoint.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-querystring/query"

	"disputedesk/internal/domain/order"
)

const defaultAPIVersion = "2024-01"

type Client struct {
	BaseURL    string
	Token      string
	APIVersion string
	HTTP       *http.Client
}

func New(baseURL, token, apiVersion string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		APIVersion: apiVersion,
		HTTP:       httpClient,
	}
}

// ordersQuery is the filter set for GET orders.json.
type ordersQuery struct {
	Name   string `url:"name,omitempty"`
	Email  string `url:"email,omitempty"`
	Status string `url:"status"`
	Limit  int    `url:"limit,omitempty"`
}

type ordersResponse struct {
	Orders []apiOrder `json:"orders"`
}

type apiOrder struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	TotalPrice        string    `json:"total_price"`
	Currency          string    `json:"currency"`
	CreatedAt         time.Time `json:"created_at"`
	FulfillmentStatus string    `json:"fulfillment_status"`
	FinancialStatus   string    `json:"financial_status"`
	LineItems         []struct {
		Title    string `json:"title"`
		Quantity int    `json:"quantity"`
		Price    string `json:"price"`
	} `json:"line_items"`
	Fulfillments []struct {
		Status          string    `json:"status"`
		CreatedAt       time.Time `json:"created_at"`
		TrackingNumber  string    `json:"tracking_number"`
		TrackingCompany string    `json:"tracking_company"`
		TrackingURL     string    `json:"tracking_url"`
	} `json:"fulfillments"`
}

func (o apiOrder) toRecord() order.Record {
	rec := order.Record{
		ID:                strconv.FormatInt(o.ID, 10),
		Name:              o.Name,
		Email:             o.Email,
		TotalPrice:        o.TotalPrice,
		Currency:          o.Currency,
		CreatedAt:         o.CreatedAt,
		FulfillmentStatus: o.FulfillmentStatus,
		FinancialStatus:   o.FinancialStatus,
	}
	for _, li := range o.LineItems {
		rec.LineItems = append(rec.LineItems, order.LineItem{Title: li.Title, Quantity: li.Quantity, Price: li.Price})
	}
	for _, f := range o.Fulfillments {
		ff := order.Fulfillment{Status: f.Status, CreatedAt: f.CreatedAt}
		if f.TrackingNumber != "" {
			ff.Tracking = &order.Tracking{Number: f.TrackingNumber, Carrier: f.TrackingCompany, URL: f.TrackingURL}
		}
		rec.Fulfillments = append(rec.Fulfillments, ff)
	}
	return rec
}

// GetOrderByName fetches one order by its human order number. The
// platform treats name as an exact filter; "#1234" and "1234" both
// resolve. Returns nil when no order matches.
func (c *Client) GetOrderByName(ctx context.Context, name string) (*order.Record, error) {
	orders, err := c.listOrders(ctx, ordersQuery{Name: name, Status: "any", Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	rec := orders[0].toRecord()
	return &rec, nil
}

// GetOrdersByEmail lists orders placed with the given email, in the
// platform's return order.
func (c *Client) GetOrdersByEmail(ctx context.Context, email string) ([]order.Record, error) {
	orders, err := c.listOrders(ctx, ordersQuery{Email: email, Status: "any", Limit: 50})
	if err != nil {
		return nil, err
	}
	recs := make([]order.Record, 0, len(orders))
	for _, o := range orders {
		recs = append(recs, o.toRecord())
	}
	return recs, nil
}

func (c *Client) listOrders(ctx context.Context, q ordersQuery) ([]apiOrder, error) {
	v, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	url := fmt.Sprintf("%s/admin/api/%s/orders.json?%s", c.BaseURL, c.APIVersion, v.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("X-Shopify-Access-Token", c.Token)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("platform %s: %s", resp.Status, string(raw))
	}

	var out ordersResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return out.Orders, nil
}
