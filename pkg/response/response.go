package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

// ErrorEnvelope is the body of every failed API call.
type ErrorEnvelope struct {
	Error *appErrors.Error `json:"error"`
}

// Status is the small acknowledgement body used by write endpoints.
type Status struct {
	Status string `json:"status"`
}

// JSON sends the payload as-is; portal clients expect bare arrays and objects.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, data)
}

// OK acknowledges a write with {"status": <status>}.
func OK(c *gin.Context, status string) {
	JSON(c, http.StatusOK, Status{Status: status})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, ErrorEnvelope{Error: appErr})
}

// Attachment streams a rendered file as a download.
func Attachment(c *gin.Context, contentType, filename string, data []byte) {
	noStore(c)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
