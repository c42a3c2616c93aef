package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workledger/internal/models"
	"workledger/internal/services"
)

type ContactHandler struct {
	service services.ContactService
}

func NewContactHandler(service services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	IsPrimary bool   `json:"isPrimary"`
}

func (r contactRequest) toModel() *models.CompanyContact {
	return &models.CompanyContact{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Role:      r.Role,
		IsPrimary: r.IsPrimary,
	}
}

func contactPathIDs(c *gin.Context) (companyID, contactID int64, ok bool) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return 0, 0, false
	}
	contactID, err = strconv.ParseInt(c.Param("contactId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return 0, 0, false
	}
	return companyID, contactID, true
}

// POST /companies/:companyId/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[contact][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), companyID, req.toModel())
	if err != nil {
		log.Printf("[contact][create][err] company=%d name=%q: %v", companyID, req.Name, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("[contact][create][ok] id=%d company=%d", created.ID, companyID)
	c.JSON(http.StatusCreated, created)
}

// GET /companies/:companyId/contacts/:contactId
func (h *ContactHandler) GetByID(c *gin.Context) {
	companyID, contactID, ok := contactPathIDs(c)
	if !ok {
		return
	}

	contact, err := h.service.GetByID(c.Request.Context(), companyID, contactID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contact)
}

// GET /companies/:companyId/contacts
func (h *ContactHandler) ListByCompany(c *gin.Context) {
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
		items = []models.CompanyContact{}
	}
	c.JSON(http.StatusOK, pageResponse(items, total, page, size))
}

// GET /companies/:companyId/contacts/search?q=term
func (h *ContactHandler) Search(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}
	page, size := parsePagination(c)

	items, total, err := h.service.Search(c.Request.Context(), companyID, c.Query("q"), page, size)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []models.CompanyContact{}
	}
	c.JSON(http.StatusOK, pageResponse(items, total, page, size))
}

// PUT /companies/:companyId/contacts/:contactId
func (h *ContactHandler) Update(c *gin.Context) {
	companyID, contactID, ok := contactPathIDs(c)
	if !ok {
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[contact][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), companyID, contactID, req.toModel())
	if err != nil {
		log.Printf("[contact][update][err] company=%d id=%d: %v", companyID, contactID, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /companies/:companyId/contacts/:contactId
func (h *ContactHandler) Delete(c *gin.Context) {
	companyID, contactID, ok := contactPathIDs(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), companyID, contactID); err != nil {
		log.Printf("[contact][delete][err] company=%d id=%d: %v", companyID, contactID, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /companies/:companyId/contacts/primary
func (h *ContactHandler) Primary(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	contact, err := h.service.PrimaryContact(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contact)
}

// GET /companies/:companyId/contacts/primary/exists
func (h *ContactHandler) HasPrimary(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	exists, err := h.service.HasPrimaryContact(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
