// Package opensearch indexes the append-only webhook ingestion trail.
// The dispute store keeps only the current record; this sink keeps
// every delivery that shaped it.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go"

	"disputedesk/internal/domain/dispute"
)

var _ dispute.EventSink = (*Sink)(nil)

type Sink struct {
	client *opensearch.Client
	index  string
}

// NewSink connects and makes sure the index exists.
func NewSink(ctx context.Context, urls []string, index string) (*Sink, error) {
	if len(urls) == 0 {
		return nil, errors.New("no opensearch addresses configured")
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	s := &Sink{client: client, index: index}
	if err := s.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"event_id":   map[string]any{"type": "keyword"},
				"dispute_id": map[string]any{"type": "keyword"},
				"kind":       map[string]any{"type": "keyword"},
				"created_at": map[string]any{"type": "date"},
				"data":       map[string]any{"type": "object", "enabled": true},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0,
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

type eventDoc struct {
	EventID   string          `json:"event_id"`
	DisputeID string          `json:"dispute_id"`
	Kind      string          `json:"kind"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// IndexDisputeEvent stores one delivery. Missing event ids get one
// assigned; webhook deliveries are indexed at-least-once, a stable
// document id keeps redeliveries from piling up.
func (s *Sink) IndexDisputeEvent(ctx context.Context, ev dispute.IngestedEvent) error {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	doc := eventDoc{
		EventID:   ev.EventID,
		DisputeID: ev.DisputeID,
		Kind:      ev.Kind,
		Data:      ev.Data,
		CreatedAt: ev.CreatedAt.UTC(),
	}
	payload, _ := json.Marshal(doc)

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(ev.EventID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

// ListDisputeEvents returns the indexed deliveries for one dispute,
// oldest first.
func (s *Sink) ListDisputeEvents(ctx context.Context, disputeID string) ([]dispute.IngestedEvent, error) {
	body := map[string]any{
		"size": 200,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []map[string]any{
					{"term": map[string]any{"dispute_id": disputeID}},
				},
			},
		},
		"sort": []map[string]any{
			{"created_at": map[string]any{"order": "asc"}},
		},
	}
	raw, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	out := make([]dispute.IngestedEvent, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		var doc eventDoc
		if err := json.Unmarshal(h.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode hit: %w", err)
		}
		if doc.EventID == "" {
			doc.EventID = h.ID
		}
		out = append(out, dispute.IngestedEvent{
			EventID:   doc.EventID,
			DisputeID: doc.DisputeID,
			Kind:      doc.Kind,
			Data:      doc.Data,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}
