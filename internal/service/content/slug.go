package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

// uniqueSlug derives a slug from the title and suffixes it with a
// counter while taken. After too many collisions a uuid fragment
// guarantees uniqueness without further round trips.
func uniqueSlug(ctx context.Context, title string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := domain.Slugify(title)
	if base == "" {
		base = "item"
	}

	slug := base
	for attempt := 2; attempt <= 10; attempt++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, attempt)
	}

	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
