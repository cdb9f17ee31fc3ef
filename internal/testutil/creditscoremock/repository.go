package creditscoremock

import (
	"context"

	domain "credit-approval-backend/internal/domain/creditscore"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	UpsertFn          func(ctx context.Context, s *domain.CreditScore) error
	GetByCustomerIDFn func(ctx context.Context, customerID uint64) (*domain.CreditScore, error)
	CountFn           func(ctx context.Context) (int64, error)
}

func (m *Repo) Upsert(ctx context.Context, s *domain.CreditScore) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByCustomerID(ctx context.Context, customerID uint64) (*domain.CreditScore, error) {
	if m.GetByCustomerIDFn != nil {
		return m.GetByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, context.Canceled
}
