package search

import (
	"net/http"
	"strconv"

	"questionbank/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	live    *LiveHandler
}

func NewHandler(service *Service, live *LiveHandler) *Handler {
	return &Handler{service: service, live: live}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/search", h.Search)
	if h.live != nil {
		v1.GET("/search/live", h.live.Handle)
	}
}

// Search GET /api/v1/search?q=&seq=
//
// The response always has status 200; a failed search carries an empty
// list and a notice instead of an error envelope.
func (h *Handler) Search(c *gin.Context) {
	var seq int64
	if raw := c.Query("seq"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "seq must be a non-negative integer")
			return
		}
		seq = n
	}

	response.Success(c, http.StatusOK, h.service.Search(c.Request.Context(), c.Query("q"), seq))
}
