package handler

import (
	"strconv"
	"strings"

	"github.com/delfruit/catalog/internal/catalog"

	"github.com/gin-gonic/gin"
)

// parsePage reads the page query parameter: a non-negative integer, zero
// when absent or malformed. Page 0 is the first page.
func parsePage(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("page"))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseLimit reads the limit query parameter: a positive integer, the
// default when absent, malformed, or non-positive. An explicit limit=0 is
// treated as absent, not as "no rows".
func parseLimit(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return catalog.DefaultLimit
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return catalog.DefaultLimit
	}
	return v
}
