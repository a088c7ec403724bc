package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"status_code"`
	ErrorMsg   string `json:"error"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("status_code=%v, error=%v", e.StatusCode, e.ErrorMsg)
}

// RenderErr logs the error with the request id and writes it as JSON.
// Internal errors are logged at error level, everything else at warn.
func RenderErr(ctx *gin.Context, err *Err) {
	err.RequestID = requestid.Get(ctx)

	fields := []zap.Field{
		zap.Int("status_code", err.StatusCode),
		zap.String("request_id", err.RequestID),
		zap.String("path", ctx.FullPath()),
	}

	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error(err.ErrorMsg, fields...)
	} else {
		zap.L().Warn(err.ErrorMsg, fields...)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		ErrorMsg:   err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		ErrorMsg:   err.Error(),
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		ErrorMsg:   fmt.Sprintf("%v not found with %v %v", resource, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		ErrorMsg:   err.Error(),
	}
}

// ErrUnprocessable covers requests that parse but violate a business rule,
// an exhausted quota or an ineligible trio.
func ErrUnprocessable(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnprocessableEntity,
		ErrorMsg:   err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		ErrorMsg:   err.Error(),
	}
}
