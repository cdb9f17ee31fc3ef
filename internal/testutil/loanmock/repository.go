package loanmock

import (
	"context"

	domain "credit-approval-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	TxFn                       func(ctx context.Context, fn func(repo domain.Repository) error) error
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn              func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLegacyIDFn            func(ctx context.Context, legacyID string) (*domain.Loan, error)
	ListByCustomerIDFn         func(ctx context.Context, customerID uint64) ([]domain.Loan, error)
	ListApprovedByCustomerIDFn func(ctx context.Context, customerID uint64) ([]domain.Loan, error)
	SumApprovedAmountFn        func(ctx context.Context, customerID uint64) (float64, error)
	CountFn                    func(ctx context.Context) (int64, error)
}

func (m *Repo) Tx(ctx context.Context, fn func(repo domain.Repository) error) error {
	if m.TxFn != nil {
		return m.TxFn(ctx, fn)
	}
	return fn(m)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLegacyID(ctx context.Context, legacyID string) (*domain.Loan, error) {
	if m.GetByLegacyIDFn != nil {
		return m.GetByLegacyIDFn(ctx, legacyID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByCustomerID(ctx context.Context, customerID uint64) ([]domain.Loan, error) {
	if m.ListByCustomerIDFn != nil {
		return m.ListByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListApprovedByCustomerID(ctx context.Context, customerID uint64) ([]domain.Loan, error) {
	if m.ListApprovedByCustomerIDFn != nil {
		return m.ListApprovedByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) SumApprovedAmount(ctx context.Context, customerID uint64) (float64, error) {
	if m.SumApprovedAmountFn != nil {
		return m.SumApprovedAmountFn(ctx, customerID)
	}
	return 0, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, context.Canceled
}
