package http

import (
	"net/http"

	ucCustomer "credit-approval-backend/internal/usecase/customer"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct{ uc *ucCustomer.Usecase }

func NewCustomerHandler(uc *ucCustomer.Usecase) *CustomerHandler { return &CustomerHandler{uc: uc} }

type registerReq struct {
	FirstName     string  `json:"first_name"     validate:"required,max=100"`
	LastName      string  `json:"last_name"      validate:"required,max=100"`
	Age           int     `json:"age"            validate:"required,gte=18,lte=100"`
	MonthlyIncome float64 `json:"monthly_income" validate:"gt=0,lt=10000000000,dec2"`
	PhoneNumber   int64   `json:"phone_number"   validate:"required,phone10"`
}

func (h *CustomerHandler) Register(c echo.Context) error {
	var req registerReq
	if er := bindAndValidate(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	dto, err := h.uc.Register(c.Request().Context(), ucCustomer.RegisterInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
