// Package dbtest opens throwaway in-memory databases for package tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"questionbank/internal/database"
	"questionbank/internal/domain"
)

// New returns a migrated in-memory SQLite database private to t. A single
// connection is kept open so the shared-cache database lives as long as t
// and concurrent callers are serialized by the pool.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

// Fixtures are the reference rows created by Seed.
type Fixtures struct {
	CSE, CSEAIML, ECE, Mech domain.Branch
	Sem1, Sem2, Sem3       domain.Semester
	EndSem, MidSem, Lab    domain.ExamType
}

// Seed inserts a small set of branches, semesters and exam types.
func Seed(t *testing.T, db *gorm.DB) Fixtures {
	t.Helper()

	f := Fixtures{
		CSE:     domain.Branch{Name: "Computer Science and Engineering", Code: "CSE"},
		CSEAIML: domain.Branch{Name: "Computer Science (AI & ML)", Code: "CSE-AIML"},
		ECE:     domain.Branch{Name: "Electronics and Communication", Code: "ECE"},
		Mech:    domain.Branch{Name: "Mechanical Engineering", Code: "MECH"},
		Sem1:    domain.Semester{Number: 1},
		Sem2:    domain.Semester{Number: 2},
		Sem3:    domain.Semester{Number: 3},
		EndSem:  domain.ExamType{Name: "End Semester", Code: "END_SEM"},
		MidSem:  domain.ExamType{Name: "Mid Semester", Code: "MID_SEM"},
		Lab:     domain.ExamType{Name: "Lab Internal", Code: "LAB"},
	}

	for _, row := range []any{
		&f.CSE, &f.CSEAIML, &f.ECE, &f.Mech,
		&f.Sem1, &f.Sem2, &f.Sem3,
		&f.EndSem, &f.MidSem, &f.Lab,
	} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to seed %T: %v", row, err)
		}
	}
	return f
}

// Paper inserts a paper with the given fields and returns it.
func Paper(t *testing.T, db *gorm.DB, p domain.Paper) domain.Paper {
	t.Helper()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to create paper: %v", err)
	}
	return p
}

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }
