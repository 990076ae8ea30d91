// README: Base handler utilities (JSON helpers, query parsing).
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rentalpromo/internal/types"
)

const maxPageSize = 100

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// queryFloat parses an optional float query parameter. A present but
// unparseable value reports ok=false.
func queryFloat(c *gin.Context, key string) (types.Maybe[float64], bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return types.Unknown[float64](), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return types.Unknown[float64](), false
	}
	return types.Known(f), true
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def, false
	}
	return n, true
}

func queryBool(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return b
}

// page reads offset and limit, capping limit at maxPageSize.
func page(c *gin.Context) (offset, limit int, ok bool) {
	offset, okOffset := queryInt(c, "offset", 0)
	limit, okLimit := queryInt(c, "limit", 20)
	if limit == 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit, okOffset && okLimit
}
