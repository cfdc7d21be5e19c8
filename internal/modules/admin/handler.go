package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"questionbank/internal/middleware"
	"questionbank/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts login publicly and everything else behind
// requireAdmin, which must re-validate the session on each request.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	v1.POST("/admin/login", h.Login)

	admin := v1.Group("/admin", requireAdmin)
	{
		admin.GET("/session", h.Session)
		admin.POST("/logout", h.Logout)

		// papers
		admin.GET("/papers", h.ListPapers)
		admin.POST("/papers", h.CreatePaper)
		admin.PUT("/papers/:id", h.EditPaper)
		admin.DELETE("/papers/:id", h.DeletePaper)

		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/metadata", h.Metadata)
	}
}

// Login POST /api/v1/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	res, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, "INVALID_EMAIL", "Please enter a valid email address")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrNotAdmin):
			response.Error(c, http.StatusForbidden, "NOT_ADMIN", "This email is not registered as an admin")
		case errors.Is(err, ErrAdminCheckFailed):
			log.Printf("admin: login_admin_check_failed err=%v", err)
			response.Error(c, http.StatusInternalServerError, "ADMIN_CHECK_FAILED", "Failed to verify admin status")
		default:
			log.Printf("admin: login_failed err=%v", err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign in")
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

// Session GET /api/v1/admin/session
func (h *Handler) Session(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not signed in")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": sess, "authenticated": true})
}

// Logout POST /api/v1/admin/logout
func (h *Handler) Logout(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not signed in")
		return
	}
	if err := h.service.Logout(c.Request.Context(), sess); err != nil {
		log.Printf("admin: logout_failed session_id=%s err=%v", sess.ID, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign out")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Signed out"})
}

// ListPapers GET /api/v1/admin/papers?q=
func (h *Handler) ListPapers(c *gin.Context) {
	papers, err := h.service.ListPapers(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Printf("admin: list_papers_failed err=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch papers")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"papers": papers, "total": len(papers)})
}

// CreatePaper POST /api/v1/admin/papers
func (h *Handler) CreatePaper(c *gin.Context) {
	var req PaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", msgMissingFields)
		return
	}

	paper, err := h.service.CreatePaper(c.Request.Context(), &req)
	if err != nil {
		h.paperError(c, err, "Failed to add question paper")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"paper":   paper,
		"message": "Question paper URL added successfully",
	})
}

// EditPaper PUT /api/v1/admin/papers/:id
func (h *Handler) EditPaper(c *gin.Context) {
	id, ok := paperID(c)
	if !ok {
		return
	}
	var req PaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", msgMissingFields)
		return
	}

	paper, err := h.service.EditPaper(c.Request.Context(), id, &req)
	if err != nil {
		h.paperError(c, err, "Failed to update question paper")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"paper":   paper,
		"message": "Question paper updated successfully",
	})
}

// DeletePaper DELETE /api/v1/admin/papers/:id?confirm=true
func (h *Handler) DeletePaper(c *gin.Context) {
	id, ok := paperID(c)
	if !ok {
		return
	}
	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); !confirmed {
		response.Error(c, http.StatusPreconditionRequired, "CONFIRMATION_REQUIRED",
			"Are you sure you want to delete this question paper?")
		return
	}

	res, err := h.service.DeletePaper(c.Request.Context(), id)
	if err != nil {
		h.paperError(c, err, "Failed to delete question paper. Please try again.")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"result":  res,
		"message": "Question paper deleted successfully",
	})
}

// Dashboard GET /api/v1/admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		log.Printf("admin: dashboard_failed err=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch dashboard data")
		return
	}
	response.Success(c, http.StatusOK, d)
}

// Metadata GET /api/v1/admin/metadata
func (h *Handler) Metadata(c *gin.Context) {
	m, err := h.service.Metadata(c.Request.Context())
	if err != nil {
		log.Printf("admin: metadata_failed err=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch metadata")
		return
	}
	response.Success(c, http.StatusOK, m)
}

func paperID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid paper id")
		return 0, false
	}
	return id, true
}

func (h *Handler) paperError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message(), verr.Fields)
	case errors.Is(err, ErrPaperNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Question paper not found")
	case errors.Is(err, ErrInvalidReference):
		response.Error(c, http.StatusBadRequest, "INVALID_REFERENCE", "Selected branch, semester or exam type does not exist")
	case errors.Is(err, ErrDefaultExamTypeMissing):
		log.Printf("admin: configuration_error err=%v", err)
		response.Error(c, http.StatusInternalServerError, "CONFIGURATION_ERROR",
			"System configuration error: Default exam type not found. Please contact support.")
	default:
		log.Printf("admin: paper_write_failed err=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
