package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Paper is an exam paper hosted behind an external shareable link.
// A paper is never removed; DeletedAt hides it from every public listing.
type Paper struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	BranchID      int64      `json:"branch_id" gorm:"index;not null"`
	SemesterID    int64      `json:"semester_id" gorm:"index;not null"`
	ExamTypeID    int64      `json:"exam_type_id" gorm:"index;not null"`
	SubjectName   *string    `json:"subject_name"`
	SubjectFolded string     `json:"-" gorm:"not null;default:''"`
	Year          int        `json:"year" gorm:"index;not null"`
	FileURL       string     `json:"file_url" gorm:"not null"`
	Downloads     int64      `json:"downloads" gorm:"not null;default:0"`
	Views         int64      `json:"views" gorm:"not null;default:0"`
	CreatedAt     time.Time  `json:"created_at" gorm:"index"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Branch   *Branch   `json:"branch,omitempty" gorm:"foreignKey:BranchID;constraint:OnDelete:RESTRICT"`
	Semester *Semester `json:"semester,omitempty" gorm:"foreignKey:SemesterID;constraint:OnDelete:RESTRICT"`
	ExamType *ExamType `json:"exam_type,omitempty" gorm:"foreignKey:ExamTypeID;constraint:OnDelete:RESTRICT"`
}

func (Paper) TableName() string { return "papers" }

// IsDeleted reports whether the paper has been soft-deleted.
func (p *Paper) IsDeleted() bool {
	return p.DeletedAt != nil
}

// Subject returns the subject name or "" when unset.
func (p *Paper) Subject() string {
	if p.SubjectName == nil {
		return ""
	}
	return *p.SubjectName
}

// FoldSubject lower-cases a subject name for case-insensitive search.
// SQLite's LOWER only folds ASCII, so folding happens here instead.
func FoldSubject(subject *string) string {
	if subject == nil {
		return ""
	}
	return strings.ToLower(*subject)
}

// BeforeSave keeps SubjectFolded in step with SubjectName.
func (p *Paper) BeforeSave(*gorm.DB) error {
	p.SubjectFolded = FoldSubject(p.SubjectName)
	return nil
}
