package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
)

// parseDateIn parses YYYY-MM-DD as a calendar date in loc.
func parseDateIn(loc *time.Location, dateStr string) (time.Time, error) {
	return domain.ParseDate(dateStr, loc)
}

// validDateRange accepts two YYYY-MM-DD values with from <= to.
func validDateRange(from, to string) bool {
	f, err := time.Parse(domain.DateLayout, from)
	if err != nil {
		return false
	}
	t, err := time.Parse(domain.DateLayout, to)
	if err != nil {
		return false
	}
	return !t.Before(f)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
