package customermock

import (
	"context"

	domain "credit-approval-backend/internal/domain/customer"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	TxFn                func(ctx context.Context, fn func(repo domain.Repository) error) error
	CreateFn            func(ctx context.Context, c *domain.Customer) error
	SaveFn              func(ctx context.Context, c *domain.Customer) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Customer, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Customer, error)
	GetByPhoneFn        func(ctx context.Context, phone int64) (*domain.Customer, error)
	GetByExternalIDFn   func(ctx context.Context, externalID int64) (*domain.Customer, error)
	UpdateCurrentDebtFn func(ctx context.Context, id uint64, debt float64) error
	ListIDsFn           func(ctx context.Context) ([]uint64, error)
	CountFn             func(ctx context.Context) (int64, error)
}

// Tx runs fn against m itself when TxFn is unset.
func (m *Repo) Tx(ctx context.Context, fn func(repo domain.Repository) error) error {
	if m.TxFn != nil {
		return m.TxFn(ctx, fn)
	}
	return fn(m)
}

func (m *Repo) Create(ctx context.Context, c *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Customer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

// GetByIDForUpdate falls back to GetByIDFn so tests only need to stub one lookup.
func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Customer, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *Repo) GetByPhone(ctx context.Context, phone int64) (*domain.Customer, error) {
	if m.GetByPhoneFn != nil {
		return m.GetByPhoneFn(ctx, phone)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByExternalID(ctx context.Context, externalID int64) (*domain.Customer, error) {
	if m.GetByExternalIDFn != nil {
		return m.GetByExternalIDFn(ctx, externalID)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateCurrentDebt(ctx context.Context, id uint64, debt float64) error {
	if m.UpdateCurrentDebtFn != nil {
		return m.UpdateCurrentDebtFn(ctx, id, debt)
	}
	return nil
}

func (m *Repo) ListIDs(ctx context.Context) ([]uint64, error) {
	if m.ListIDsFn != nil {
		return m.ListIDsFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, context.Canceled
}
