package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// NewError writes an HTTPError response with the status.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// MethodNotAllowed answers requests with a method that the route does not
// support.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, HTTPError{
		Error: "this HTTP method is not allowed for the endpoint you called",
	})
}
