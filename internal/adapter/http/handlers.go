package http

import (
	"net/http"
	"time"

	ucStatus "credit-approval-backend/internal/usecase/status"

	"github.com/labstack/echo/v4"
)

const serviceName = "credit_approval_system"

type Handler struct{ status *ucStatus.Usecase }

func NewHandler(status *ucStatus.Usecase) *Handler { return &Handler{status: status} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  ucStatus.StateHealthy,
		"service": serviceName,
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Status reports database reachability and row counts; 503 when unhealthy.
func (h *Handler) Status(c echo.Context) error {
	dto := h.status.Status(c.Request().Context())
	code := http.StatusOK
	if dto.Status != ucStatus.StateHealthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, dto)
}
