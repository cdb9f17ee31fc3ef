package http

import (
	"net/http"

	ucScore "credit-approval-backend/internal/usecase/creditscore"

	"github.com/labstack/echo/v4"
)

type CreditScoreHandler struct{ uc *ucScore.Usecase }

func NewCreditScoreHandler(uc *ucScore.Usecase) *CreditScoreHandler {
	return &CreditScoreHandler{uc: uc}
}

func (h *CreditScoreHandler) GetCreditScore(c echo.Context) error {
	customerID, ok := idParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
