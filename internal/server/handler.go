// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contractocr/internal/async"
	"contractocr/internal/extract"
	"contractocr/internal/repository"
)

// Handler handles HTTP requests for extraction operations.
type Handler struct {
	queue async.Queue
	repo  *repository.ExtractionRepository
}

// NewHandler creates a handler. queue and repo may be nil when background
// processing or persistence is disabled; the matching routes then answer 503.
func NewHandler(queue async.Queue, repo *repository.ExtractionRepository) *Handler {
	return &Handler{queue: queue, repo: repo}
}

// Register mounts the API routes on the router.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)
	api := r.Group("/api")
	api.POST("/extract", h.Extract)
	api.POST("/documents", h.SubmitDocument)
	api.GET("/extractions", h.ListExtractions)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type extractRequest struct {
	Segments []any `json:"segments"`
}

// Extract handles POST /api/extract: run field extraction over pre-parsed
// markdown segments and return the fields synchronously.
func (h *Handler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_BODY",
				"message": "Body must be JSON with a segments array",
			},
		})
		return
	}

	res, err := extract.ExtractFields(req.Segments)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedSegment) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNSUPPORTED_SEGMENT",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL",
				"message": err.Error(),
			},
		})
		return
	}

	unresolved := make([]string, 0)
	for _, k := range res.Unresolved() {
		unresolved = append(unresolved, string(k))
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"fields":     res,
		"unresolved": unresolved,
	})
}

type submitRequest struct {
	Path string `json:"path" binding:"required"`
}

// SubmitDocument handles POST /api/documents: enqueue a document for
// background OCR and extraction.
func (h *Handler) SubmitDocument(c *gin.Context) {
	if h.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QUEUE_DISABLED",
				"message": "Background processing is not configured",
			},
		})
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_PATH",
				"message": "path is required",
			},
		})
		return
	}

	job := async.Job{ID: uuid.New(), Path: req.Path, SubmittedAt: time.Now()}
	if err := h.queue.Enqueue(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ENQUEUE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"job_id":  job.ID.String(),
	})
}

// ListExtractions handles GET /api/extractions.
func (h *Handler) ListExtractions(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORE_DISABLED",
				"message": "Persistence is not configured",
			},
		})
		return
	}
	recs, err := h.repo.ListExtractions(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	out := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		out = append(out, gin.H{
			"id":          rec.ID.String(),
			"source_path": rec.SourcePath,
			"fields":      rec.Fields,
			"created_at":  rec.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"extractions": out,
	})
}
