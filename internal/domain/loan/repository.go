package loan

import "context"

type Repository interface {
	Tx(ctx context.Context, fn func(repo Repository) error) error
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLegacyID(ctx context.Context, legacyID string) (*Loan, error)
	// Full history, newest first
	ListByCustomerID(ctx context.Context, customerID uint64) ([]Loan, error)
	ListApprovedByCustomerID(ctx context.Context, customerID uint64) ([]Loan, error)
	SumApprovedAmount(ctx context.Context, customerID uint64) (float64, error)
	Count(ctx context.Context) (int64, error)
}
