package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workledger/internal/models"
	"workledger/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type taskRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description"`
	TicketID         string  `json:"ticketId"`
	StartDate        string  `json:"startDate" binding:"required"` // yyyy-MM-dd
	EndDate          string  `json:"endDate"`
	HoursWorked      float64 `json:"hoursWorked"`
	RateUsed         float64 `json:"rateUsed"`
	Type             string  `json:"type"`
	Currency         string  `json:"currency"`
	IsBilled         bool    `json:"isBilled"`
	IsPaid           bool    `json:"isPaid"`
	BillingDate      string  `json:"billingDate"`
	PaymentDate      string  `json:"paymentDate"`
	InvoiceID        *string `json:"invoiceId"`
	ReferencedTaskID string  `json:"referencedTaskId"`
	Notes            string  `json:"notes"`
}

func (r taskRequest) toModel(owner string) (*models.Task, error) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	billingDate, err := parseOptionalDate(r.BillingDate)
	if err != nil {
		return nil, err
	}
	paymentDate, err := parseOptionalDate(r.PaymentDate)
	if err != nil {
		return nil, err
	}
	return &models.Task{
		TicketID:         r.TicketID,
		Title:            r.Title,
		Description:      r.Description,
		StartDate:        startDate,
		EndDate:          endDate,
		HoursWorked:      r.HoursWorked,
		RateUsed:         r.RateUsed,
		Type:             r.Type,
		Currency:         r.Currency,
		IsBilled:         r.IsBilled,
		IsPaid:           r.IsPaid,
		BillingDate:      billingDate,
		PaymentDate:      paymentDate,
		InvoiceID:        r.InvoiceID,
		ReferencedTaskID: r.ReferencedTaskID,
		Notes:            r.Notes,
		OwnerEmail:       owner,
	}, nil
}

// @Summary      Record a task
// @Description  Creates a billable task under a project, generating a ticket id when none is supplied
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        projectId  path      int          true  "Project id"
// @Param        task       body      taskRequest  true  "Task payload"
// @Success      201        {object}  models.Task
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /projects/{projectId}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := req.toModel(ownerEmail(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected yyyy-MM-dd"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), projectID, task)
	if err != nil {
		log.Printf("[task][create][err] project=%d: %v", projectID, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][create][ok] id=%d ticket=%s project=%d", created.ID, created.TicketID, created.ProjectID)
	c.JSON(http.StatusCreated, created)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][get][err] id=%d: %v", id, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

// PUT /projects/:projectId/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := req.toModel(ownerEmail(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected yyyy-MM-dd"})
		return
	}
	task.ProjectID = projectID

	updated, err := h.service.Update(c.Request.Context(), id, task)
	if err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][update][ok] id=%d ticket=%s", updated.ID, updated.TicketID)
	c.JSON(http.StatusOK, updated)
}

// DELETE /projects/:projectId/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// @Summary      List the caller's tasks
// @Description  Filters by project, type, billing and payment state with free-text search and pagination
// @Tags         Tasks
// @Produce      json
// @Param        projectId  query     int     false  "Project id"
// @Param        type       query     string  false  "Task type"
// @Param        isBilled   query     bool    false  "Billing state"
// @Param        isPaid     query     bool    false  "Payment state"
// @Param        search     query     string  false  "Free-text search"
// @Param        page       query     int     false  "Page (zero-based)"
// @Param        size       query     int     false  "Page size"
// @Success      200        {object}  map[string]interface{}
// @Router       /user/tasks [get]
func (h *TaskHandler) ListByOwner(c *gin.Context) {
	owner := ownerEmail(c)
	page, size := parsePagination(c)

	var query models.TaskQuery
	if v, ok := c.GetQuery("projectId"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
			return
		}
		query.ProjectID = &id
	}
	if v, ok := c.GetQuery("type"); ok {
		t := v
		query.Type = &t
	}
	if v, ok := c.GetQuery("isBilled"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isBilled"})
			return
		}
		query.IsBilled = &b
	}
	if v, ok := c.GetQuery("isPaid"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isPaid"})
			return
		}
		query.IsPaid = &b
	}
	query.Search = c.Query("search")

	items, total, err := h.service.List(c.Request.Context(), owner, query, page, size)
	if err != nil {
		log.Printf("[task][list][err] owner=%s: %v", owner, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []models.Task{}
	}
	c.JSON(http.StatusOK, pageResponse(items, total, page, size))
}

// GET /projects/:projectId/tasks/date-range?from=yyyy-MM-dd&to=yyyy-MM-dd
func (h *TaskHandler) ListByDateRange(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	from, err := parseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected yyyy-MM-dd"})
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected yyyy-MM-dd"})
		return
	}
	page, size := parsePagination(c)

	items, total, err := h.service.ListByProjectAndDateRange(c.Request.Context(), projectID, from, to, page, size)
	if err != nil {
		log.Printf("[task][date-range][err] project=%d: %v", projectID, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []models.Task{}
	}
	c.JSON(http.StatusOK, pageResponse(items, total, page, size))
}

type billingUpdateRequest struct {
	TaskID      int64   `json:"taskId" binding:"required"`
	IsBilled    bool    `json:"isBilled"`
	BillingDate string  `json:"billingDate"`
	InvoiceID   *string `json:"invoiceId"`
}

// @Summary      Bulk billing transition
// @Description  Applies billing transitions item by item; a missing task aborts the rest of the batch without undoing committed items
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        updates  body      []billingUpdateRequest  true  "Ordered transitions"
// @Success      200      {array}   models.Task
// @Failure      404      {object}  map[string]string
// @Router       /tasks/billing-status [put]
func (h *TaskHandler) UpdateBillingStatus(c *gin.Context) {
	var reqs []billingUpdateRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		log.Printf("[task][billing][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make([]models.BillingStatusUpdate, 0, len(reqs))
	for _, r := range reqs {
		billingDate, err := parseOptionalDate(r.BillingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billingDate, expected yyyy-MM-dd"})
			return
		}
		updates = append(updates, models.BillingStatusUpdate{
			TaskID:      r.TaskID,
			IsBilled:    r.IsBilled,
			BillingDate: billingDate,
			InvoiceID:   r.InvoiceID,
		})
	}

	updated, err := h.service.UpdateBillingStatus(c.Request.Context(), updates)
	if err != nil {
		log.Printf("[task][billing][err] applied=%d/%d: %v", len(updated), len(updates), err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][billing][ok] applied=%d", len(updated))
	c.JSON(http.StatusOK, updated)
}

type paymentUpdateRequest struct {
	TaskID      int64  `json:"taskId" binding:"required"`
	IsPaid      bool   `json:"isPaid"`
	PaymentDate string `json:"paymentDate"`
}

// PUT /tasks/payment-status
func (h *TaskHandler) UpdatePaymentStatus(c *gin.Context) {
	var reqs []paymentUpdateRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		log.Printf("[task][payment][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make([]models.PaymentStatusUpdate, 0, len(reqs))
	for _, r := range reqs {
		paymentDate, err := parseOptionalDate(r.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paymentDate, expected yyyy-MM-dd"})
			return
		}
		updates = append(updates, models.PaymentStatusUpdate{
			TaskID:      r.TaskID,
			IsPaid:      r.IsPaid,
			PaymentDate: paymentDate,
		})
	}

	updated, err := h.service.UpdatePaymentStatus(c.Request.Context(), updates)
	if err != nil {
		log.Printf("[task][payment][err] applied=%d/%d: %v", len(updated), len(updates), err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][payment][ok] applied=%d", len(updated))
	c.JSON(http.StatusOK, updated)
}
