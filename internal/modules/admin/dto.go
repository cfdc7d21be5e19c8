package admin

import (
	"questionbank/internal/domain"
	"questionbank/internal/modules/auth"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult carries the session and its token. Authenticated is only a
// rendering hint for the client; every protected request is re-checked.
type LoginResult struct {
	Session       *auth.Session `json:"session"`
	Token         string        `json:"token"`
	Authenticated bool          `json:"authenticated"`
}

// PaperRequest is the body of create and edit. ExamTypeID is honoured on
// create only; without it the default exam type is used.
type PaperRequest struct {
	BranchID    int64  `json:"branch_id" validate:"required,gt=0"`
	SemesterID  int64  `json:"semester_id" validate:"required,gt=0"`
	SubjectName string `json:"subject_name" validate:"required"`
	Year        int    `json:"year" validate:"required,gte=1900,lte=2100"`
	FileURL     string `json:"file_url" validate:"required,absurl"`
	ExamTypeID  *int64 `json:"exam_type_id,omitempty" validate:"omitempty,gt=0"`
}

type BranchDownloads struct {
	BranchID   int64  `json:"branch_id"`
	BranchName string `json:"branch_name"`
	BranchCode string `json:"branch_code"`
	Papers     int    `json:"papers"`
	Downloads  int64  `json:"downloads"`
}

// MonthlyActivity is one bar of the upload histogram. Buckets are keyed by
// calendar year and month; Month is the short label shown on the chart.
type MonthlyActivity struct {
	Key     string `json:"key"`
	Month   string `json:"month"`
	Year    int    `json:"year"`
	Uploads int    `json:"uploads"`
}

type Dashboard struct {
	TotalPapers     int               `json:"total_papers"`
	TotalDownloads  int64             `json:"total_downloads"`
	TotalViews      int64             `json:"total_views"`
	BranchDownloads []BranchDownloads `json:"branch_wise_downloads"`
	MonthlyActivity []MonthlyActivity `json:"monthly_activity"`
}

type Metadata struct {
	Branches  []domain.Branch   `json:"branches"`
	Semesters []domain.Semester `json:"semesters"`
	ExamTypes []domain.ExamType `json:"exam_types"`
}

type DeleteResult struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
	// False when the paper had already been deleted.
	Changed bool `json:"changed"`
}
