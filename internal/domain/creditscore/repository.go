package creditscore

import "context"

type Repository interface {
	// Upsert replaces the snapshot for s.CustomerID.
	Upsert(ctx context.Context, s *CreditScore) error
	GetByCustomerID(ctx context.Context, customerID uint64) (*CreditScore, error)
	Count(ctx context.Context) (int64, error)
}
