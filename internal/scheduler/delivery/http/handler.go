package http

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const maxLimit = 1000

// queryLimit reads the "limit" query parameter, falling back to def.
func queryLimit(c echo.Context, def int) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > maxLimit {
		return 0, fmt.Errorf("limit must be an integer between 1 and %d", maxLimit)
	}
	return limit, nil
}
