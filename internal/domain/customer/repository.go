package customer

import "context"

type Repository interface {
	// Runs fn in a transaction; nested in a unit of work it becomes a savepoint.
	Tx(ctx context.Context, fn func(repo Repository) error) error
	Create(ctx context.Context, c *Customer) error
	Save(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uint64) (*Customer, error)
	// Row-locks the customer for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Customer, error)
	GetByPhone(ctx context.Context, phone int64) (*Customer, error)
	GetByExternalID(ctx context.Context, externalID int64) (*Customer, error)
	UpdateCurrentDebt(ctx context.Context, id uint64, debt float64) error
	ListIDs(ctx context.Context) ([]uint64, error)
	Count(ctx context.Context) (int64, error)
}
