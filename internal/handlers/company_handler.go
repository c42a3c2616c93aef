package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workledger/internal/models"
	"workledger/internal/services"
)

type CompanyHandler struct {
	service services.CompanyService
}

func NewCompanyHandler(service services.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

type companyRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	TaxID   string `json:"taxId"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

func (r companyRequest) toModel(owner string) *models.Company {
	return &models.Company{
		Name:       r.Name,
		Email:      r.Email,
		TaxID:      r.TaxID,
		Address:    r.Address,
		Status:     models.CompanyStatus(r.Status),
		OwnerEmail: owner,
	}
}

// POST /companies
func (h *CompanyHandler) Create(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[company][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.toModel(ownerEmail(c)))
	if err != nil {
		log.Printf("[company][create][err] name=%q: %v", req.Name, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("[company][create][ok] id=%d name=%q", created.ID, created.Name)
	c.JSON(http.StatusCreated, created)
}

// GET /companies/:companyId
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	company, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, company)
}

// GET /companies
func (h *CompanyHandler) ListByOwner(c *gin.Context) {
	page, size := parsePagination(c)

	items, total, err := h.service.ListByOwner(c.Request.Context(), ownerEmail(c), page, size)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []models.Company{}
	}
	c.JSON(http.StatusOK, pageResponse(items, total, page, size))
}

// PUT /companies/:companyId
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[company][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req.toModel(ownerEmail(c)))
	if err != nil {
		log.Printf("[company][update][err] id=%d: %v", id, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /companies/:companyId
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[company][delete][err] id=%d: %v", id, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
