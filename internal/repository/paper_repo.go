package repository

import (
	"context"
	"strings"
	"time"

	"questionbank/internal/domain"

	"gorm.io/gorm"
)

// PaperDisjunction is a set of predicates over papers joined with OR.
// Each SubjectContains entry matches subject_name case-insensitively as a
// substring; BranchIn matches branch_id against the listed ids.
type PaperDisjunction struct {
	SubjectContains []string
	BranchIn        []int64
}

// Empty reports whether the disjunction has no predicate at all.
func (d PaperDisjunction) Empty() bool {
	return len(d.SubjectContains) == 0 && len(d.BranchIn) == 0
}

// PaperFields are the admin-editable columns of a paper. They are always
// written together.
type PaperFields struct {
	BranchID    int64
	SemesterID  int64
	SubjectName *string
	Year        int
	FileURL     string
}

type PaperRepository struct {
	db *gorm.DB
}

func NewPaperRepository(db *gorm.DB) *PaperRepository {
	return &PaperRepository{db: db}
}

func withRefs(q *gorm.DB) *gorm.DB {
	return q.Preload("Branch").Preload("Semester").Preload("ExamType")
}

func (r *PaperRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Paper{}).Where("papers.deleted_at IS NULL")
}

// Create inserts p. Counters always start at zero.
func (r *PaperRepository) Create(ctx context.Context, p *domain.Paper) error {
	p.Downloads = 0
	p.Views = 0
	return mapDBError(r.db.WithContext(ctx).Create(p).Error)
}

// GetByID returns the paper with its references, soft-deleted or not.
func (r *PaperRepository) GetByID(ctx context.Context, id int64) (*domain.Paper, error) {
	var p domain.Paper
	if err := withRefs(r.db.WithContext(ctx)).First(&p, id).Error; err != nil {
		if IsNotFound(err) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetActiveByID is GetByID restricted to papers that are not soft-deleted.
func (r *PaperRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Paper, error) {
	var p domain.Paper
	if err := withRefs(r.active(ctx)).Where("papers.id = ?", id).First(&p).Error; err != nil {
		if IsNotFound(err) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update overwrites every editable column of paper id. There is no version
// check: concurrent edits are last-write-wins.
func (r *PaperRepository) Update(ctx context.Context, id int64, f PaperFields) error {
	tx := r.db.WithContext(ctx).Model(&domain.Paper{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"branch_id":      f.BranchID,
			"semester_id":    f.SemesterID,
			"subject_name":   f.SubjectName,
			"subject_folded": domain.FoldSubject(f.SubjectName),
			"year":           f.Year,
			"file_url":       f.FileURL,
		})
	if tx.Error != nil {
		return mapDBError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrPaperNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at on a paper that is not deleted yet. It
// returns false without error when the paper was already deleted, and
// ErrPaperNotFound when no paper has that id.
func (r *PaperRepository) SoftDelete(ctx context.Context, id int64, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Paper{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at)
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Paper{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrPaperNotFound
	}
	return false, nil
}

// ListActive returns every non-deleted paper, newest first.
func (r *PaperRepository) ListActive(ctx context.Context) ([]domain.Paper, error) {
	papers := []domain.Paper{}
	err := withRefs(r.active(ctx)).Order("papers.created_at DESC").Find(&papers).Error
	return papers, err
}

// ListByCatalog returns the non-deleted papers of one branch, semester and year.
func (r *PaperRepository) ListByCatalog(ctx context.Context, branchID, semesterID int64, year int) ([]domain.Paper, error) {
	papers := []domain.Paper{}
	err := withRefs(r.active(ctx)).
		Where("papers.branch_id = ? AND papers.semester_id = ? AND papers.year = ?", branchID, semesterID, year).
		Order("papers.created_at DESC").
		Find(&papers).Error
	return papers, err
}

// ListByBranchesExcludingExamTypes returns non-deleted papers of the given
// branches whose exam type is not in excludedExamTypeIDs.
func (r *PaperRepository) ListByBranchesExcludingExamTypes(ctx context.Context, branchIDs, excludedExamTypeIDs []int64) ([]domain.Paper, error) {
	papers := []domain.Paper{}
	if len(branchIDs) == 0 {
		return papers, nil
	}
	q := withRefs(r.active(ctx)).Where("papers.branch_id IN ?", branchIDs)
	if len(excludedExamTypeIDs) > 0 {
		q = q.Where("papers.exam_type_id NOT IN ?", excludedExamTypeIDs)
	}
	err := q.Order("papers.created_at DESC").Find(&papers).Error
	return papers, err
}

// Search runs d against non-deleted papers, newest first. An empty
// disjunction matches nothing.
func (r *PaperRepository) Search(ctx context.Context, d PaperDisjunction) ([]domain.Paper, error) {
	papers := []domain.Paper{}
	if d.Empty() {
		return papers, nil
	}

	clauses := make([]string, 0, len(d.SubjectContains)+1)
	args := make([]any, 0, len(d.SubjectContains)+1)
	for _, s := range d.SubjectContains {
		clauses = append(clauses, `papers.subject_folded LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(s))
	}
	if len(d.BranchIn) > 0 {
		clauses = append(clauses, "papers.branch_id IN ?")
		args = append(args, d.BranchIn)
	}

	err := withRefs(r.active(ctx)).
		Where("("+strings.Join(clauses, " OR ")+")", args...).
		Order("papers.created_at DESC").
		Find(&papers).Error
	return papers, err
}

// IncrementViews adds one to the view counter in a single UPDATE so that
// concurrent callers never lose an increment.
func (r *PaperRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "views")
}

// IncrementDownloads is IncrementViews for the download counter.
func (r *PaperRepository) IncrementDownloads(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "downloads")
}

func (r *PaperRepository) increment(ctx context.Context, id int64, column string) error {
	tx := r.db.WithContext(ctx).Model(&domain.Paper{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrPaperNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
