package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"workledger/internal/models"
	"workledger/internal/pdf"
	"workledger/internal/services"
)

type ReportHandler struct {
	tasks     services.TaskService
	stats     services.StatisticsService
	generator pdf.Generator
	email     services.EmailService
}

func NewReportHandler(tasks services.TaskService, stats services.StatisticsService, generator pdf.Generator, email services.EmailService) *ReportHandler {
	return &ReportHandler{tasks: tasks, stats: stats, generator: generator, email: email}
}

// One report covers at most this many tasks; a month of work is
// typically well under a hundred.
const reportMaxTasks = 10000

func (h *ReportHandler) buildReport(c *gin.Context) (pdf.ReportData, []byte, bool) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return pdf.ReportData{}, nil, false
	}
	from, err := parseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected yyyy-MM-dd"})
		return pdf.ReportData{}, nil, false
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected yyyy-MM-dd"})
		return pdf.ReportData{}, nil, false
	}

	tasks, _, err := h.tasks.ListByProjectAndDateRange(c.Request.Context(), projectID, from, to, 0, reportMaxTasks)
	if err != nil {
		log.Printf("[report][err] project=%d: %v", projectID, err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return pdf.ReportData{}, nil, false
	}

	data := pdf.ReportData{
		OwnerEmail: ownerEmail(c),
		OwnerName:  c.Query("userName"),
		From:       from,
		To:         to,
		Tasks:      tasks,
	}
	bytes, err := h.generator.ActivityReport(data)
	if err != nil {
		log.Printf("[report][render][err] project=%d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return pdf.ReportData{}, nil, false
	}
	return data, bytes, true
}

// GET /user/projects/:projectId/report?from=yyyy-MM-dd&to=yyyy-MM-dd
func (h *ReportHandler) DownloadActivityReport(c *gin.Context) {
	data, bytes, ok := h.buildReport(c)
	if !ok {
		return
	}
	filename := fmt.Sprintf("sal-%s-%s.pdf", data.From.Format("2006-01"), data.To.Format("2006-01"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", bytes)
}

// POST /user/projects/:projectId/report/email
func (h *ReportHandler) EmailActivityReport(c *gin.Context) {
	data, bytes, ok := h.buildReport(c)
	if !ok {
		return
	}

	period := fmt.Sprintf("%s - %s", data.From.Format("02/01/2006"), data.To.Format("02/01/2006"))
	if err := h.email.SendActivityReport(data.OwnerEmail, period, bytes); err != nil {
		log.Printf("[report][email][err] to=%s: %v", data.OwnerEmail, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send report"})
		return
	}
	log.Printf("[report][email][ok] to=%s period=%s tasks=%d", data.OwnerEmail, period, len(data.Tasks))
	c.JSON(http.StatusOK, gin.H{"sentTo": data.OwnerEmail, "sentAt": time.Now().UTC()})
}

// GET /user/projects/costs
func (h *ReportHandler) ProjectCosts(c *gin.Context) {
	costs, err := h.stats.ProjectCostsByMonth(c.Request.Context(), ownerEmail(c))
	if err != nil {
		log.Printf("[stats][costs][err] owner=%s: %v", ownerEmail(c), err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if costs == nil {
		costs = []models.ProjectMonthlyCost{}
	}
	c.JSON(http.StatusOK, costs)
}

// GET /user/statistics/companies
func (h *ReportHandler) CompanyStatistics(c *gin.Context) {
	stats, err := h.stats.CompanyStats(c.Request.Context(), ownerEmail(c))
	if err != nil {
		log.Printf("[stats][err] owner=%s: %v", ownerEmail(c), err)
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	if stats == nil {
		stats = []models.CompanyTaskStats{}
	}
	c.JSON(http.StatusOK, stats)
}
