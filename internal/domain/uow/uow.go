package uow

import (
	"context"

	"credit-approval-backend/internal/domain/creditscore"
	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/loan"
)

// Repos are bound to the transaction opened by WithinTx.
type Repos struct {
	Customers    customer.Repository
	Loans        loan.Repository
	CreditScores creditscore.Repository
}

type UnitOfWork interface {
	// plain tx: commit when fn returns nil, roll back otherwise
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the customer row first, then pass it in
	WithinCustomerTx(ctx context.Context, customerID uint64, fn func(r Repos, c *customer.Customer) error) error
}
