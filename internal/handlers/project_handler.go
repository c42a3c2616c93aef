package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workledger/internal/models"
	"workledger/internal/services"
)

type ProjectHandler struct {
	service services.ProjectService
}

func NewProjectHandler(service services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type projectRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	DailyRate      float64 `json:"dailyRate"`
	HourlyRate     float64 `json:"hourlyRate"`
	Currency       string  `json:"currency"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	EstimatedHours float64 `json:"estimatedHours"`
	Status         string  `json:"status"`
}

func (r projectRequest) toModel(owner string) (*models.Project, error) {
	startDate, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	return &models.Project{
		Name:           r.Name,
		Description:    r.Description,
		DailyRate:      r.DailyRate,
		HourlyRate:     r.HourlyRate,
		Currency:       r.Currency,
		StartDate:      startDate,
		EndDate:        endDate,
		EstimatedHours: r.EstimatedHours,
		Status:         models.ProjectStatus(r.Status),
		OwnerEmail:     owner,
	}, nil
}

// POST /companies/:companyId/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[project][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project, err := req.toModel(ownerEmail(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected yyyy-MM-dd"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), companyID, project)
	if err != nil {
		log.Printf("[project][create][err] company=%d: %v", companyID, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("[project][create][ok] id=%d company=%d", created.ID, companyID)
	c.JSON(http.StatusCreated, created)
}

// GET /companies/:companyId/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	project, err := h.service.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, project)
}

// GET /companies/:companyId/projects
func (h *ProjectHandler) ListByCompany(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}
	page, size := parsePagination(c)

	items, total, err := h.service.ListByCompany(c.Request.Context(), companyID, page, size)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []models.Project{}
	}
	c.JSON(http.StatusOK, pageResponse(items, total, page, size))
}

// GET /user/projects
func (h *ProjectHandler) ListByOwner(c *gin.Context) {
	page, size := parsePagination(c)

	items, total, err := h.service.ListByOwner(c.Request.Context(), ownerEmail(c), page, size)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []models.Project{}
	}
	c.JSON(http.StatusOK, pageResponse(items, total, page, size))
}

// PUT /companies/:companyId/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[project][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project, err := req.toModel(ownerEmail(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected yyyy-MM-dd"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), companyID, id, project)
	if err != nil {
		log.Printf("[project][update][err] id=%d: %v", id, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /companies/:companyId/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), companyID, id); err != nil {
		log.Printf("[project][delete][err] id=%d: %v", id, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
