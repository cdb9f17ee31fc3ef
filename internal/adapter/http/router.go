package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	System       *Handler
	Customers    *CustomerHandler
	Loans        *LoanHandler
	CreditScores *CreditScoreHandler
}

// RegisterRoutes mounts the API on e. Mutating routes get the extra
// middleware (idempotency) when any is given.
func RegisterRoutes(e *echo.Echo, h Handlers, writes ...echo.MiddlewareFunc) {
	e.GET("/health", h.System.Health)
	e.GET("/health/", h.System.Health)
	e.GET("/status", h.System.Status)

	e.POST("/register", h.Customers.Register, writes...)
	e.POST("/check-eligibility", h.Loans.CheckEligibility)
	e.POST("/create-loan", h.Loans.CreateLoan, writes...)
	e.GET("/view-loan/:loan_id", h.Loans.ViewLoan)
	e.GET("/view-loans/:customer_id", h.Loans.ViewLoans)

	e.GET("/customer/:id/credit-score", h.CreditScores.GetCreditScore)
}
