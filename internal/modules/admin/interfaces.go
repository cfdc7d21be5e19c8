package admin

import (
	"context"
	"time"

	"questionbank/internal/domain"
	"questionbank/internal/modules/auth"
	"questionbank/internal/repository"
)

// Authenticator is the auth service contract the console signs in with.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, string, error)
	SignOut(ctx context.Context, sessionID string) error
}

type AdminRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type PaperRepository interface {
	Create(ctx context.Context, p *domain.Paper) error
	GetByID(ctx context.Context, id int64) (*domain.Paper, error)
	Update(ctx context.Context, id int64, f repository.PaperFields) error
	SoftDelete(ctx context.Context, id int64, at time.Time) (bool, error)
	ListActive(ctx context.Context) ([]domain.Paper, error)
}

type BranchRepository interface {
	List(ctx context.Context) ([]domain.Branch, error)
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

type SemesterRepository interface {
	List(ctx context.Context) ([]domain.Semester, error)
	GetByID(ctx context.Context, id int64) (*domain.Semester, error)
}

type ExamTypeRepository interface {
	List(ctx context.Context) ([]domain.ExamType, error)
	GetByID(ctx context.Context, id int64) (*domain.ExamType, error)
	GetByCode(ctx context.Context, code string) (*domain.ExamType, error)
}
