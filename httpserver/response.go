package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"movieinfo/errs"

	"github.com/labstack/echo/v4"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"
	internalMessage  = "Internal server error"
)

type APIResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Result  interface{}       `json:"result,omitempty"`
	Info    string            `json:"info,omitempty"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writeError(c echo.Context, status int, err error) error {
	resp := APIResponse{
		Code:    errorCode(err, status),
		Message: errorMessage(err),
		Fields:  errs.ErrorFields(err),
	}
	if status >= http.StatusInternalServerError && errs.ErrorCode(err) == errs.EINTERNAL {
		resp.Message = internalMessage
		resp.Fields = nil
	}
	var he *echo.HTTPError
	if status == http.StatusBadRequest && errors.As(err, &he) {
		resp.Info = "request body must be a JSON movie info"
	}
	return c.JSON(status, resp)
}

func errorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
		return fmt.Sprint(he.Message)
	}
	return errs.ErrorMessage(err)
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case errs.EINVALID:
			return "100010"
		case errs.ENOTFOUND:
			return "100404"
		case errs.ECONFLICT:
			return "100409"
		case errs.EUNAUTHORIZED:
			return "100401"
		case errs.ENOTIMPLEMENTED:
			return "100501"
		case errs.EINTERNAL:
			return defaultErrorCode
		}
	}

	// malformed bodies are reported like any other invalid input
	if status == http.StatusBadRequest {
		return "100010"
	}
	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
