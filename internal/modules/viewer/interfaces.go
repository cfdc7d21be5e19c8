package viewer

import (
	"context"

	"questionbank/internal/domain"
)

// PaperRepository is the subset of repository.PaperRepository the viewer uses.
type PaperRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Paper, error)
	IncrementViews(ctx context.Context, id int64) error
	IncrementDownloads(ctx context.Context, id int64) error
}
