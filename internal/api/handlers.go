package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/JustJay7/nyaya-mitra/internal/cache"
	"github.com/JustJay7/nyaya-mitra/internal/cases"
	"github.com/JustJay7/nyaya-mitra/internal/database"
	"github.com/JustJay7/nyaya-mitra/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	service *cases.Service
	db      *gorm.DB
	cache   cache.Cache
	logger  *logger.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(service *cases.Service, db *gorm.DB, cache cache.Cache, logger *logger.Logger) *Handlers {
	return &Handlers{
		service: service,
		db:      db,
		cache:   cache,
		logger:  logger,
	}
}

// CreateCaseRequest is the body of POST /api/cases.
type CreateCaseRequest struct {
	CaseTitle       string `json:"caseTitle"`
	PartiesInvolved string `json:"partiesInvolved"`
	CaseDescription string `json:"caseDescription"`
}

// CreateCase stores a new case
func (h *Handlers) CreateCase(c *gin.Context) {
	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Failed to create case.",
			"error":   err.Error(),
		})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.CaseTitle, req.PartiesInvolved, req.CaseDescription)
	if err != nil {
		status := http.StatusInternalServerError
		var verr *cases.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusBadRequest
		} else {
			h.logger.Error("Error creating case", "error", err)
		}

		c.JSON(status, gin.H{
			"message": "Failed to create case.",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListCases returns every case, newest first
func (h *Handlers) ListCases(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Error fetching cases", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch cases.",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetCase returns a single case
func (h *Handlers) GetCase(c *gin.Context) {
	found, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, cases.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Case not found."})
		return
	}
	if err != nil {
		h.logger.Error("Error fetching case", "case_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch case.",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, found)
}

// GenerateJudgment runs the judgment generator for a case
func (h *Handlers) GenerateJudgment(c *gin.Context) {
	updated, err := h.service.GenerateJudgment(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, updated)
	case errors.Is(err, cases.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Case not found."})
	case errors.Is(err, cases.ErrAlreadyJudged):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to generate judgment.",
			"error":   err.Error(),
		})
	}
}

// Ping is a connectivity probe for the front end
func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "API is working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"origin":    c.GetHeader("Origin"),
	})
}

// HealthCheck returns the health status. A failed database ping reports
// "degraded" with 503.
func (h *Handlers) HealthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	dbHealthy := database.Ping(h.db) == nil

	body := gin.H{
		"database": dbHealthy,
		"cache":    h.cache.Stats(),
		"time":     time.Now().Unix(),
	}

	if dbHealthy {
		n, err := database.NewCaseStore(h.db).Count(c.Request.Context())
		if err != nil {
			dbHealthy = false
		} else {
			body["cases"] = n
		}
	}

	if !dbHealthy {
		status, code = "degraded", http.StatusServiceUnavailable
		body["database"] = false
		h.logger.Warn("Health check failed", "database", false)
	}

	body["status"] = status
	c.JSON(code, body)
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.cache.Stats(),
	})
}
