package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUintParam parses a path parameter as an unsigned integer ID
func getUintParam(c echo.Context, name string) (uint, error) {
	param := c.Param(name)
	value, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, param)
	}
	return uint(value), nil
}
