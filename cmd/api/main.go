package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"questionbank/internal/config"
	"questionbank/internal/database"
	"questionbank/internal/middleware"
	"questionbank/internal/modules/admin"
	"questionbank/internal/modules/auth"
	"questionbank/internal/modules/catalog"
	"questionbank/internal/modules/search"
	"questionbank/internal/modules/viewer"
	jwtsvc "questionbank/internal/pkg/jwt"
	"questionbank/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	branchRepo := repository.NewBranchRepository(db)
	semesterRepo := repository.NewSemesterRepository(db)
	examTypeRepo := repository.NewExamTypeRepository(db)
	paperRepo := repository.NewPaperRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewAuthUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)
	authService := auth.NewService(userRepo, sessionRepo, j)

	links := viewer.NewLinks(cfg.RecognizedPDFHosts, viewer.DefaultRules()...)
	viewerHandler := viewer.NewHandler(viewer.NewService(paperRepo, links))

	searchService := search.NewService(branchRepo, paperRepo, links)
	searchHandler := search.NewHandler(searchService, search.NewLiveHandler(searchService, cfg.CORSAllowedOrigins))

	catalogService := catalog.NewService(branchRepo, semesterRepo, examTypeRepo, paperRepo, catalog.Options{
		ReservedBranchCodes:       cfg.ReservedBranchCodes,
		ReservedExcludedExamTypes: cfg.ReservedExcludedExamTypes,
	})
	catalogHandler := catalog.NewHandler(catalogService)

	adminService := admin.NewService(authService, adminRepo, paperRepo, branchRepo, semesterRepo, examTypeRepo, admin.Options{
		DefaultExamTypeCode: cfg.DefaultExamTypeCode,
	})
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		gin.Logger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		catalogHandler.RegisterRoutes(v1)
		searchHandler.RegisterRoutes(v1)
		viewerHandler.RegisterRoutes(v1)

		// admin console, login public and the rest session-checked
		adminHandler.RegisterRoutes(v1, middleware.RequireAdminSession(authService, adminRepo))
	}

	log.Printf("api listening addr=%s env=%s", cfg.HTTPAddr, cfg.AppEnv)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
