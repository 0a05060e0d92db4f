package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/logger"
)

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Status: "success", Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Status: "success", Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Status: "success", Message: message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Status: "error", Message: message})
}

// respondError maps domain errors to HTTP statuses in one place so handlers
// never do their own taxonomy. Unknown errors become an opaque 500; the
// detail goes to the log, not the client.
func respondError(c *gin.Context, err error) {
	var (
		validationErr domain.ValidationError
		forbiddenErr  domain.ForbiddenError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, Response{Status: "error", Message: validationErr.Error()})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, Response{Status: "error", Message: forbiddenErr.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, Response{Status: "error", Message: err.Error()})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTargetNotFound),
		errors.Is(err, domain.ErrVenueNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrChatNotFound),
		errors.Is(err, domain.ErrReportNotFound):
		c.JSON(http.StatusNotFound, Response{Status: "error", Message: err.Error()})
	default:
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, Response{Status: "error", Message: "internal server error"})
	}
}
