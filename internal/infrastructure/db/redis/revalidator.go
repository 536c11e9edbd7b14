package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RevalidateChannel carries the content type whose listings went stale.
const RevalidateChannel = "revalidate"

// Revalidator bumps a per-content-type listing version and announces the
// change so presentation caches can drop stale pages.
// Key format: revalidate:<content_type>
type Revalidator struct {
	client *redis.Client
}

// NewRevalidator creates a Revalidator wrapping the given Redis client.
func NewRevalidator(client *redis.Client) *Revalidator {
	return &Revalidator{client: client}
}

// Publish increments the listing version of contentType and publishes the
// type on RevalidateChannel.
func (r *Revalidator) Publish(ctx context.Context, contentType string) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, r.key(contentType))
	pipe.Publish(ctx, RevalidateChannel, contentType)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("revalidate %s: %w", contentType, err)
	}
	return nil
}

// Version returns the current listing version of contentType, 0 if it was
// never revalidated.
func (r *Revalidator) Version(ctx context.Context, contentType string) (int64, error) {
	v, err := r.client.Get(ctx, r.key(contentType)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("listing version %s: %w", contentType, err)
	}
	return v, nil
}

func (r *Revalidator) key(contentType string) string {
	return "revalidate:" + contentType
}
