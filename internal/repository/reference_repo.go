package repository

import (
	"context"

	"questionbank/internal/domain"

	"gorm.io/gorm"
)

// BranchRepository reads the branches reference table.
type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// List returns all branches ordered by name.
func (r *BranchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	err := r.db.WithContext(ctx).Order("name ASC").Find(&branches).Error
	return branches, err
}

// ListByCodes returns the branches whose code is one of codes, ordered by name.
func (r *BranchRepository) ListByCodes(ctx context.Context, codes []string) ([]domain.Branch, error) {
	branches := []domain.Branch{}
	if len(codes) == 0 {
		return branches, nil
	}
	err := r.db.WithContext(ctx).Where("code IN ?", codes).Order("name ASC").Find(&branches).Error
	return branches, err
}

// GetByCode is an exact-match lookup; a miss is gorm.ErrRecordNotFound.
func (r *BranchRepository) GetByCode(ctx context.Context, code string) (*domain.Branch, error) {
	var b domain.Branch
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	var b domain.Branch
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a branch. Used by seeding only; branches are immutable afterwards.
func (r *BranchRepository) Create(ctx context.Context, b *domain.Branch) error {
	return mapDBError(r.db.WithContext(ctx).Create(b).Error)
}

// SemesterRepository reads the semesters reference table.
type SemesterRepository struct {
	db *gorm.DB
}

func NewSemesterRepository(db *gorm.DB) *SemesterRepository {
	return &SemesterRepository{db: db}
}

func (r *SemesterRepository) List(ctx context.Context) ([]domain.Semester, error) {
	var semesters []domain.Semester
	err := r.db.WithContext(ctx).Order("number ASC").Find(&semesters).Error
	return semesters, err
}

// GetByNumber is an exact-match lookup; a miss is gorm.ErrRecordNotFound.
func (r *SemesterRepository) GetByNumber(ctx context.Context, number int) (*domain.Semester, error) {
	var s domain.Semester
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*domain.Semester, error) {
	var s domain.Semester
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SemesterRepository) Create(ctx context.Context, s *domain.Semester) error {
	return mapDBError(r.db.WithContext(ctx).Create(s).Error)
}

// ExamTypeRepository reads the exam_types reference table.
type ExamTypeRepository struct {
	db *gorm.DB
}

func NewExamTypeRepository(db *gorm.DB) *ExamTypeRepository {
	return &ExamTypeRepository{db: db}
}

func (r *ExamTypeRepository) List(ctx context.Context) ([]domain.ExamType, error) {
	var types []domain.ExamType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error
	return types, err
}

// ListByCodes returns the exam types whose code is one of codes.
func (r *ExamTypeRepository) ListByCodes(ctx context.Context, codes []string) ([]domain.ExamType, error) {
	types := []domain.ExamType{}
	if len(codes) == 0 {
		return types, nil
	}
	err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&types).Error
	return types, err
}

// GetByCode is an exact-match lookup; a miss is gorm.ErrRecordNotFound.
func (r *ExamTypeRepository) GetByCode(ctx context.Context, code string) (*domain.ExamType, error) {
	var et domain.ExamType
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&et).Error; err != nil {
		return nil, err
	}
	return &et, nil
}

func (r *ExamTypeRepository) GetByID(ctx context.Context, id int64) (*domain.ExamType, error) {
	var et domain.ExamType
	if err := r.db.WithContext(ctx).First(&et, id).Error; err != nil {
		return nil, err
	}
	return &et, nil
}

func (r *ExamTypeRepository) Create(ctx context.Context, et *domain.ExamType) error {
	return mapDBError(r.db.WithContext(ctx).Create(et).Error)
}
