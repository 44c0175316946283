package campaign

import "context"

// Repository defines read access to the external content store. Both calls
// are idempotent reads, safe to issue concurrently for the same campaign.
type Repository interface {
	// GetBySlug returns the campaign for the slug or an error marked
	// not_found when the slug does not resolve.
	GetBySlug(ctx context.Context, slug string) (*Campaign, error)
	// ListActive returns campaigns whose editorial kill switch is on.
	ListActive(ctx context.Context) ([]*Campaign, error)
}
