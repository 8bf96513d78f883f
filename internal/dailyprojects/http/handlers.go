package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"
	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/service"
)

// Handler exposes the project engine over HTTP.
type Handler struct {
	projects *service.ProjectService
}

func New(projects *service.ProjectService) *Handler {
	return &Handler{projects: projects}
}

// GetDaily returns the cached or freshly generated batch for a date.
func (h *Handler) GetDaily(c *gin.Context) {
	date := c.Query("date")
	force := c.Query("force_regenerate") == "true"

	count := 5
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count: must be an integer"})
			return
		}
		count = parsed
	}

	batch, err := h.projects.GetDaily(c.Request.Context(), date, count, force)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// GenerateCustom generates projects for ad-hoc preferences.
func (h *Handler) GenerateCustom(c *gin.Context) {
	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Count == 0 {
		req.Count = 5
	}

	projects, err := h.projects.GenerateCustom(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetByID resolves one project from its daily identifier.
func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// GetStats returns the engine counters snapshot.
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.projects.GetStats(c.Request.Context()))
}

// GetArchive lists cached batches from previous days.
func (h *Handler) GetArchive(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days: must be an integer"})
			return
		}
		days = parsed
	}

	archive, err := h.projects.GetArchive(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"archive": archive, "days": len(archive)})
}

// ClearCache invalidates cached batches for one date, or all of them.
func (h *Handler) ClearCache(c *gin.Context) {
	removed, err := h.projects.ClearCache(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// respondError maps engine errors to status codes. Infrastructure failures
// that reach this point have no fallback path left, so they surface as 503.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
	}
}
