package subscribers

import (
	"context"

	"booktok/internal/types"
)

type Repository interface {
	// Save stores the subscriber, signing up again with the same email only updates the name.
	Save(ctx context.Context, sub *types.Subscriber) error
}
