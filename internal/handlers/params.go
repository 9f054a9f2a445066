package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

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

// intQuery returns def when the parameter is absent and ok=false when it
// is present but not a number.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func yearMonth(c *gin.Context) (int, int, bool) {
	year, ok1 := intQuery(c, "year", 0)
	month, ok2 := intQuery(c, "month", 0)
	if !ok1 || !ok2 || year == 0 || month == 0 {
		return 0, 0, false
	}
	return year, month, true
}
