package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InternalErrorMessage is the body sent for failures the client cannot act on.
const InternalErrorMessage = "An internal server error occurred."

// ErrorBody is the JSON envelope of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error aborts the request with the given status and message.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// BadGateway sends a 502 error response for upstream failures.
func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}

// InternalError sends a 500 error response. The cause is never echoed back.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, InternalErrorMessage)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	Error(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}
