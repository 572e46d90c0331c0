// Package pagarme is the payment gateway client: charge reads for draft
// enrichment and the defense hand-off.
package pagarme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"disputedesk/internal/domain/defense"
	"disputedesk/internal/domain/dispute"
)

type Client struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func New(baseURL, secretKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTP:      httpClient,
	}
}

type chargeResp struct {
	ID              string `json:"id"`
	LastTransaction struct {
		Card struct {
			Brand          string `json:"brand"`
			LastFourDigits string `json:"last_four_digits"`
		} `json:"card"`
	} `json:"last_transaction"`
}

// GetCharge reads the charge back from the gateway. The webhook payload
// omits card details; the charge resource carries them.
func (c *Client) GetCharge(ctx context.Context, chargeID string) (*dispute.Charge, error) {
	raw, err := c.do(ctx, http.MethodGet, "/core/v5/charges/"+chargeID, nil)
	if err != nil {
		return nil, err
	}

	var out chargeResp
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode charge %s: %w", chargeID, err)
	}

	return &dispute.Charge{
		ID:           out.ID,
		CardBrand:    out.LastTransaction.Card.Brand,
		CardLastFour: out.LastTransaction.Card.LastFourDigits,
	}, nil
}

type defenseReq struct {
	Dossier string `json:"dossier"`
	Opinion string `json:"opinion,omitempty"`
}

// SubmitDefense files the dossier against the dispute and returns the
// gateway's raw acknowledgement for the record.
func (c *Client) SubmitDefense(ctx context.Context, rec defense.Record) (json.RawMessage, error) {
	body := defenseReq{Dossier: rec.Dossier, Opinion: rec.Opinion}
	return c.do(ctx, http.MethodPost, "/core/v5/disputes/"+rec.DisputeID+"/defense", body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		j, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		reader = bytes.NewReader(j)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.SetBasicAuth(c.SecretKey, "")
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("gateway %s: %s", resp.Status, string(raw))
	}
	return raw, nil
}
