package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/schedule-intake-api/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope represents the common response contract consumed by the front end.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JSON writes an envelope with the provided HTTP status.
func JSON(c *gin.Context, httpStatus int, envelope Envelope) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(httpStatus, envelope)
}

// Success responds with HTTP 200 and a confirmation message.
func Success(c *gin.Context, message string) {
	JSON(c, http.StatusOK, Envelope{Status: StatusSuccess, Message: message})
}

// Error converts err to the common structure. Only the client-facing message of the
// typed error is exposed; wrapped causes stay in the logs.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	JSON(c, appErr.Status, Envelope{Status: StatusError, Message: appErr.Message})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
