package uowmock

import (
	"context"
	"errors"

	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinCustomerTxFn func(ctx context.Context, customerID uint64, fn func(r uow.Repos, c *customer.Customer) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinCustomerTx(fn func(context.Context, uint64, func(uow.Repos, *customer.Customer) error) error) *UoW {
	m.WithinCustomerTxFn = fn
	return m
}

// WithRepos runs both tx kinds straight against repos, without a real
// transaction. WithinCustomerTx loads the customer through repos.Customers.
func (m *UoW) WithRepos(repos uow.Repos) *UoW {
	m.WithinTxFn = func(_ context.Context, fn func(uow.Repos) error) error {
		return fn(repos)
	}
	m.WithinCustomerTxFn = func(ctx context.Context, id uint64, fn func(uow.Repos, *customer.Customer) error) error {
		c, err := repos.Customers.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		return fn(repos, c)
	}
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinCustomerTx(ctx context.Context, customerID uint64, fn func(r uow.Repos, c *customer.Customer) error) error {
	if m.WithinCustomerTxFn != nil {
		return m.WithinCustomerTxFn(ctx, customerID, fn)
	}
	return errUnimplemented
}
