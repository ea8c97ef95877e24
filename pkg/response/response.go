package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every API handler replies with. Run records,
// stratum listings and GeoJSON payloads all travel in Data; Code is zero
// on success and mirrors the HTTP status otherwise.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success wraps data in a zero-code envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error replies with the given status and message, no data.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest rejects a malformed request, typically an unknown run kind.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound reports a run or dataset that is not in the registry.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError reports a failure inside a pipeline or the registry.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
