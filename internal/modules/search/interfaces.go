package search

import (
	"context"

	"questionbank/internal/domain"
	"questionbank/internal/repository"
)

type BranchLister interface {
	List(ctx context.Context) ([]domain.Branch, error)
}

type PaperSearcher interface {
	Search(ctx context.Context, d repository.PaperDisjunction) ([]domain.Paper, error)
}

// HostMatcher decides which file URLs may appear in public results.
type HostMatcher interface {
	IsRecognizedHost(raw string) bool
}
