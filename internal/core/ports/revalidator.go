package ports

import "context"

// Revalidator tells the presentation side that cached listings of a content
// type are stale.
type Revalidator interface {
	Revalidate(ctx context.Context, contentType string)
}
