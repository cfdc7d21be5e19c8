package catalog

import (
	"net/http"
	"strconv"

	"questionbank/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	branches := v1.Group("/branches")
	{
		branches.GET("", h.ListBranches)
		branches.GET("/reserved", h.ListReservedBranches)
		branches.GET("/:code/years", h.ListYears)
		branches.GET("/:code/years/:year/semesters", h.ListSemesters)
		branches.GET("/:code/years/:year/semesters/:semester/papers", h.ListSemesterPapers)
	}
	v1.GET("/papers/reserved", h.ListReservedPapers)
	v1.GET("/navigate", h.Navigate)
}

// ListBranches GET /api/v1/branches
func (h *Handler) ListBranches(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Branches(c.Request.Context()))
}

// ListReservedBranches GET /api/v1/branches/reserved
func (h *Handler) ListReservedBranches(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.ReservedBranches(c.Request.Context()))
}

// ListYears GET /api/v1/branches/:code/years
func (h *Handler) ListYears(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Years(c.Request.Context(), c.Param("code")))
}

// ListSemesters GET /api/v1/branches/:code/years/:year/semesters
func (h *Handler) ListSemesters(c *gin.Context) {
	year, ok := intParam(c, "year")
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, h.service.Semesters(c.Request.Context(), c.Param("code"), year))
}

// ListSemesterPapers GET /api/v1/branches/:code/years/:year/semesters/:semester/papers
func (h *Handler) ListSemesterPapers(c *gin.Context) {
	year, ok := intParam(c, "year")
	if !ok {
		return
	}
	semester, ok := intParam(c, "semester")
	if !ok {
		return
	}
	response.Success(c, http.StatusOK,
		h.service.SemesterPapers(c.Request.Context(), c.Param("code"), year, semester))
}

// ListReservedPapers GET /api/v1/papers/reserved
func (h *Handler) ListReservedPapers(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.ReservedPapers(c.Request.Context()))
}

// Navigate GET /api/v1/navigate?path=
func (h *Handler) Navigate(c *gin.Context) {
	path := c.DefaultQuery("path", "/")
	response.Success(c, http.StatusOK, h.service.Navigate(c.Request.Context(), path))
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+name)
		return 0, false
	}
	return n, true
}
