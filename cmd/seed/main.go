package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"questionbank/internal/config"
	"questionbank/internal/database"
	"questionbank/internal/domain"
	"questionbank/internal/modules/auth"
	jwtsvc "questionbank/internal/pkg/jwt"
	"questionbank/internal/repository"
)

var branches = []domain.Branch{
	{Name: "Computer Science and Engineering", Code: "CSE"},
	{Name: "Computer Science (AI & ML)", Code: "CSE-AIML"},
	{Name: "Computer Science (Data Science)", Code: "CSE-DS"},
	{Name: "Electronics and Communication Engineering", Code: "ECE"},
	{Name: "Electrical and Electronics Engineering", Code: "EEE"},
	{Name: "Mechanical Engineering", Code: "MECH"},
	{Name: "Civil Engineering", Code: "CIVIL"},
	{Name: "Information Technology", Code: "IT"},
}

var examTypes = []domain.ExamType{
	{Name: "End Semester", Code: "END_SEM"},
	{Name: "Mid Semester", Code: "MID_SEM"},
	{Name: "Class Test", Code: "CLASS_TEST"},
	{Name: "Lab Internal", Code: "LAB"},
	{Name: "Supplementary", Code: "SUPPLEMENTARY"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// ================== REFERENCE DATA ==================
	log.Println("Seeding branches, semesters and exam types...")
	if err := insertMissing(db, &branches); err != nil {
		log.Fatal("seed branches failed:", err)
	}
	semesters := make([]domain.Semester, 0, 8)
	for n := 1; n <= 8; n++ {
		semesters = append(semesters, domain.Semester{Number: n})
	}
	if err := insertMissing(db, &semesters); err != nil {
		log.Fatal("seed semesters failed:", err)
	}
	if err := insertMissing(db, &examTypes); err != nil {
		log.Fatal("seed exam types failed:", err)
	}

	// ================== BOOTSTRAP ADMIN ==================
	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set, skipping admin bootstrap")
		log.Println("Seed completed")
		return
	}

	ctx := context.Background()
	authService := auth.NewService(
		repository.NewAuthUserRepository(db),
		repository.NewSessionRepository(db),
		jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL),
	)
	if _, err := authService.CreateUser(ctx, email, password); err != nil {
		if !errors.Is(err, auth.ErrEmailAlreadyExists) {
			log.Fatal("create admin credential failed:", err)
		}
		log.Printf("credential exists email=%s", email)
	}

	if _, err := repository.NewAdminRepository(db).Add(ctx, email); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			log.Fatal("add admin to allow-list failed:", err)
		}
		log.Printf("already on allow-list email=%s", email)
	}

	log.Printf("Seed completed admin=%s", email)
}

// insertMissing inserts rows whose unique key is not present yet.
func insertMissing[T any](db *gorm.DB, rows *[]T) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error
}
