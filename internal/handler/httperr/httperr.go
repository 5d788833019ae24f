// Package httperr defines the JSON error envelope shared by handlers
// and the error-collector middleware.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error payload returned to API clients. Status rides
// along for the middleware and never serializes.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// New builds a Response carrying the client-facing message.
func New(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError records err on the gin context so the error middleware
// can log it with its stack, then writes the envelope. Only msg and
// detail reach the client.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: nil error")
	}

	resp := New(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
