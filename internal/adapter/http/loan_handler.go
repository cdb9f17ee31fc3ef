package http

import (
	"net/http"

	ucLoan "credit-approval-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *ucLoan.Usecase }

func NewLoanHandler(uc *ucLoan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

// loanReq is shared by /check-eligibility and /create-loan.
type loanReq struct {
	CustomerID   uint64  `json:"customer_id"   validate:"required"`
	LoanAmount   float64 `json:"loan_amount"   validate:"gte=1000,lt=10000000000000,dec2"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0.01,lte=50,dec2"`
	Tenure       int     `json:"tenure"        validate:"gte=1,lte=120"`
}

func (h *LoanHandler) CheckEligibility(c echo.Context) error {
	var req loanReq
	if er := bindAndValidate(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	dto, err := h.uc.CheckEligibility(c.Request().Context(), ucLoan.LoanRequest(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// CreateLoan answers 201 for every recorded loan; loan_approved carries the decision.
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req loanReq
	if er := bindAndValidate(c, &req); er != nil {
		return c.JSON(http.StatusBadRequest, er)
	}
	dto, err := h.uc.Create(c.Request().Context(), ucLoan.LoanRequest(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ViewLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ViewLoans(c echo.Context) error {
	customerID, ok := idParam(c, "customer_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
	}
	list, err := h.uc.ListByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
