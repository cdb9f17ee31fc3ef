package http

import (
	"errors"
	"net/http"
	"strconv"

	customerDomain "credit-approval-backend/internal/domain/customer"
	loanDomain "credit-approval-backend/internal/domain/loan"
	ucCustomer "credit-approval-backend/internal/usecase/customer"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// bindAndValidate returns the 400 payload to send, or nil when req is usable.
func bindAndValidate(c echo.Context, req any) *ErrorResponse {
	if err := c.Bind(req); err != nil {
		return &ErrorResponse{Error: "invalid body"}
	}
	if err := c.Validate(req); err != nil {
		return &ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)}
	}
	return nil
}

func idParam(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// writeError maps domain errors to HTTP codes. Unknown errors are logged and
// reported as 500 without detail.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, customerDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: customerDomain.ErrNotFound.Error()})
	case errors.Is(err, loanDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: loanDomain.ErrNotFound.Error()})
	case errors.Is(err, customerDomain.ErrDuplicatePhone):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: customerDomain.ErrDuplicatePhone.Error()})
	case errors.Is(err, ucCustomer.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request().Method,
		"route":  c.Path(),
	}).Error("request failed")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
