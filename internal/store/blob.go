package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"disputedesk/internal/domain/dispute"
)

// Blob is the durable tier: the whole record set serialized as one JSON
// object in an S3-compatible bucket. The set is capped and small, so a
// single object keeps reads and writes atomic without server-side
// coordination.
type Blob struct {
	client *minio.Client
	bucket string
	object string
}

// NewBlob wires the durable tier onto an existing object-storage client.
func NewBlob(client *minio.Client, bucket, object string) *Blob {
	return &Blob{client: client, bucket: bucket, object: object}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (b *Blob) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", b.bucket, err)
	}
	if exists {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", b.bucket, err)
	}
	return nil
}

// Load reads the persisted record set. A missing object is an empty
// store, not an error.
func (b *Blob) Load(ctx context.Context) ([]dispute.Event, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", b.bucket, b.object, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s/%s: %w", b.bucket, b.object, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var recs []dispute.Event
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", b.bucket, b.object, err)
	}
	return recs, nil
}

// Save overwrites the persisted record set.
func (b *Blob) Save(ctx context.Context, recs []dispute.Event) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode record set: %w", err)
	}

	_, err = b.client.PutObject(ctx, b.bucket, b.object,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", b.bucket, b.object, err)
	}
	return nil
}
