package health

import (
	"context"

	"github.com/minio/minio-go/v7"
)

// ObjectStoreChecker checks that the dispute store bucket is reachable.
// A down object store is a degradation, not an outage: the event store
// keeps serving from its in-memory tier.
type ObjectStoreChecker struct {
	client *minio.Client
	bucket string
}

// NewObjectStoreChecker creates a new object store health checker.
func NewObjectStoreChecker(client *minio.Client, bucket string) *ObjectStoreChecker {
	return &ObjectStoreChecker{client: client, bucket: bucket}
}

// Name returns "objectstore".
func (c *ObjectStoreChecker) Name() string {
	return "objectstore"
}

// Check verifies the bucket exists.
func (c *ObjectStoreChecker) Check(ctx context.Context) Result {
	ok, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	if !ok {
		return Result{Status: StatusDown, Message: "bucket does not exist"}
	}
	return Result{Status: StatusUp}
}
