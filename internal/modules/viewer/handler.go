package viewer

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

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
	papers := v1.Group("/papers")
	{
		papers.POST("/:id/view", h.View)
		papers.POST("/:id/download", h.Download)
	}
	v1.GET("/viewer/preview", h.Preview)
}

// View POST /api/v1/papers/:id/view
func (h *Handler) View(c *gin.Context) {
	h.open(c, h.service.View)
}

// Download POST /api/v1/papers/:id/download
func (h *Handler) Download(c *gin.Context) {
	h.open(c, h.service.Download)
}

func (h *Handler) open(c *gin.Context, fn func(context.Context, int64) (*Opened, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid paper id")
		return
	}

	out, err := fn(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaperNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Paper not found")
			return
		}
		log.Printf("viewer: open_failed paper_id=%d err=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to open paper")
		return
	}

	response.Success(c, http.StatusOK, out)
}

// Preview GET /api/v1/viewer/preview?url=
func (h *Handler) Preview(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("url"))
	if raw == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "url is required")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"url":          raw,
		"preview_url":  h.service.Preview(raw),
		"download_url": h.service.Links().DownloadURL(raw),
		"recognized":   h.service.Links().IsRecognizedHost(raw),
	})
}
