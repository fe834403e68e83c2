package restapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"polydash/internal/domain/entity"
)

// errorResponse is the failure envelope of every /api endpoint.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// dataResponse wraps a single payload.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// bareError is the body of the endpoints that never used the envelope (debug, analyze).
type bareError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// statusFor maps an AppError kind onto the HTTP status.
func statusFor(err error) int {
	switch entity.KindOf(err) {
	case entity.KindBadRequest:
		return http.StatusBadRequest
	case entity.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), errorResponse{Success: false, Error: err.Error()})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: msg})
}

func respondBareError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), bareError{Error: err.Error()})
}

// setCache lets the CDN cache the response, 0 leaves the header unset.
func setCache(c *gin.Context, seconds int) {
	if seconds <= 0 {
		return
	}
	c.Header("Cache-Control", fmt.Sprintf("s-maxage=%d, stale-while-revalidate", seconds))
}
