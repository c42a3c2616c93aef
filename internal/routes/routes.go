package routes

import (
	"github.com/gin-gonic/gin"

	"workledger/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	companyHandler *handlers.CompanyHandler,
	projectHandler *handlers.ProjectHandler,
	taskHandler *handlers.TaskHandler,
	contactHandler *handlers.ContactHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// COMPANIES
	companies := r.Group("/companies")
	{
		companies.POST("", companyHandler.Create)
		companies.GET("", companyHandler.ListByOwner)
		companies.GET("/:companyId", companyHandler.GetByID)
		companies.PUT("/:companyId", companyHandler.Update)
		companies.DELETE("/:companyId", companyHandler.Delete)

		// PROJECTS (scoped by company)
		companies.POST("/:companyId/projects", projectHandler.Create)
		companies.GET("/:companyId/projects", projectHandler.ListByCompany)
		companies.GET("/:companyId/projects/:id", projectHandler.GetByID)
		companies.PUT("/:companyId/projects/:id", projectHandler.Update)
		companies.DELETE("/:companyId/projects/:id", projectHandler.Delete)

		// CONTACTS (scoped by company)
		companies.POST("/:companyId/contacts", contactHandler.Create)
		companies.GET("/:companyId/contacts", contactHandler.ListByCompany)
		companies.GET("/:companyId/contacts/search", contactHandler.Search)
		companies.GET("/:companyId/contacts/primary", contactHandler.Primary)
		companies.GET("/:companyId/contacts/primary/exists", contactHandler.HasPrimary)
		companies.GET("/:companyId/contacts/:contactId", contactHandler.GetByID)
		companies.PUT("/:companyId/contacts/:contactId", contactHandler.Update)
		companies.DELETE("/:companyId/contacts/:contactId", contactHandler.Delete)
	}

	// TASKS
	projects := r.Group("/projects")
	{
		projects.POST("/:projectId/tasks", taskHandler.Create)
		projects.PUT("/:projectId/tasks/:id", taskHandler.Update)
		projects.DELETE("/:projectId/tasks/:id", taskHandler.Delete)
		projects.GET("/:projectId/tasks/date-range", taskHandler.ListByDateRange)
	}
	tasks := r.Group("/tasks")
	{
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/billing-status", taskHandler.UpdateBillingStatus)
		tasks.PUT("/payment-status", taskHandler.UpdatePaymentStatus)
	}

	// Caller-scoped views and reports
	user := r.Group("/user")
	{
		user.GET("/tasks", taskHandler.ListByOwner)
		user.GET("/projects", projectHandler.ListByOwner)
		user.GET("/projects/costs", reportHandler.ProjectCosts)
		user.GET("/projects/:projectId/report", reportHandler.DownloadActivityReport)
		user.POST("/projects/:projectId/report/email", reportHandler.EmailActivityReport)
		user.GET("/statistics/companies", reportHandler.CompanyStatistics)
	}

	return r
}
