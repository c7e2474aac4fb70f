package pkg

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Code   int               `json:"code"`
	Msg    string            `json:"msg"`
	Data   any               `json:"data,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Code: 0, Msg: "ok", Data: data})
}

// OKMsg writes a success envelope with a custom message.
func OKMsg(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Envelope{Code: 0, Msg: msg, Data: data})
}

// Fail maps err to its status and writes an error envelope. Internal errors are
// recorded on the context for the request logger and hidden from the client.
func Fail(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, Envelope{Code: status, Msg: msg})
}

// FailBind reports a request-binding error as 400 with per-field rules when the
// validator produced them.
func FailBind(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			fields[fe.Field()] = rule
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
			Code:   http.StatusBadRequest,
			Msg:    "invalid params",
			Errors: fields,
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Code: http.StatusBadRequest, Msg: "invalid params"})
}
