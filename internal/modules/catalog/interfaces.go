package catalog

import (
	"context"

	"questionbank/internal/domain"
)

type BranchRepository interface {
	List(ctx context.Context) ([]domain.Branch, error)
	ListByCodes(ctx context.Context, codes []string) ([]domain.Branch, error)
	GetByCode(ctx context.Context, code string) (*domain.Branch, error)
}

type SemesterRepository interface {
	List(ctx context.Context) ([]domain.Semester, error)
	GetByNumber(ctx context.Context, number int) (*domain.Semester, error)
}

type ExamTypeRepository interface {
	ListByCodes(ctx context.Context, codes []string) ([]domain.ExamType, error)
}

type PaperRepository interface {
	ListByCatalog(ctx context.Context, branchID, semesterID int64, year int) ([]domain.Paper, error)
	ListByBranchesExcludingExamTypes(ctx context.Context, branchIDs, excludedExamTypeIDs []int64) ([]domain.Paper, error)
}
