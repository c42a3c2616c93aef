package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"workledger/internal/middleware"
	"workledger/internal/models"
)

const dateLayout = "2006-01-02"

func ownerEmail(c *gin.Context) string {
	v, ok := c.Get(middleware.UserEmailKey)
	if !ok {
		return ""
	}
	email, _ := v.(string)
	return email
}

// page/size query parameters, Spring-style zero-based page.
func parsePagination(c *gin.Context) (page, size int) {
	page, size = 0, 10
	if v, ok := c.GetQuery("page"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page = n
		}
	}
	if v, ok := c.GetQuery("size"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	return page, size
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrTaskNotFound),
		errors.Is(err, models.ErrProjectNotFound),
		errors.Is(err, models.ErrCompanyNotFound),
		errors.Is(err, models.ErrContactNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func pageResponse(items interface{}, total int64, page, size int) gin.H {
	return gin.H{
		"items":      items,
		"totalCount": total,
		"page":       page,
		"pageSize":   size,
	}
}
