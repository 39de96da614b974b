package clicks

import (
	"context"

	"booktok/internal/types"
)

type Repository interface {
	Save(ctx context.Context, event *types.AffiliateEvent) error
	// CountByBook returns the number of click events per book id.
	CountByBook(ctx context.Context) (map[string]int, error)
}
