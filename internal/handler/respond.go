package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
	ID    string `json:"id,omitempty" example:"b1c19636-7ee8-4b13-a9a6-3d4f3a9c6d11"`
}

// internalError logs the failure with full detail server-side and answers
// with an opaque 500 carrying only a correlation id.
func internalError(c *gin.Context, op string, err error) {
	id := uuid.NewString()
	logrus.WithFields(logrus.Fields{
		"op":             op,
		"correlation_id": id,
	}).WithError(err).Error("storage failure")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error", ID: id})
}
