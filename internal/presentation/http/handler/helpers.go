package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/presentation/http/middleware"
	"github.com/sangkips/tillpoint/pkg/apperror"
)

// GetSession extracts the till session set by the auth middleware
func GetSession(c *gin.Context) (entity.Session, bool) {
	value, exists := c.Get(middleware.SessionKey)
	if !exists {
		return entity.Session{}, false
	}
	session, ok := value.(entity.Session)
	return session, ok
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewBadRequestError("Invalid " + name)
	}
	return uint(id), nil
}

// parseDateRange reads start and end query values as RFC3339 or YYYY-MM-DD.
// A bare end date covers that whole day.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	start, err := parseDate(c.Query("start"), false)
	if err != nil {
		return nil, nil, apperror.NewBadRequestError("Invalid start date")
	}
	end, err := parseDate(c.Query("end"), true)
	if err != nil {
		return nil, nil, apperror.NewBadRequestError("Invalid end date")
	}
	return start, end, nil
}

func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
