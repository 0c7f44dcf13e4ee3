package handler

import (
	"errors"
	"net/http"
	"strconv"

	"curtainledger/internal/model"
	"curtainledger/internal/service"
	"curtainledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case model.IsValidation(err):
		status = http.StatusBadRequest
	case model.IsDuplicate(err):
		status = http.StatusConflict
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response.Error(status, err.Error()))
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid "+key+" parameter"))
		return 0, false
	}
	return n, true
}

// queryPeriod reads year and month; zeros select the current period.
func queryPeriod(c *gin.Context) (int, int, bool) {
	year, ok := queryInt(c, "year")
	if !ok {
		return 0, 0, false
	}
	month, ok := queryInt(c, "month")
	if !ok {
		return 0, 0, false
	}
	return year, month, true
}
