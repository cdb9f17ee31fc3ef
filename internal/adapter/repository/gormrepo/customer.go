package gormrepo

import (
	"context"
	"errors"

	customerDomain "credit-approval-backend/internal/domain/customer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx. On a repo
// that is already bound to a tx gorm opens a savepoint instead.
func (r *CustomerRepository) Tx(ctx context.Context, fn func(repo customerDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CustomerRepository{db: tx})
	})
}

func (r *CustomerRepository) Create(ctx context.Context, c *customerDomain.Customer) error {
	return duplicate(c, r.db.WithContext(ctx).Create(c).Error)
}

func (r *CustomerRepository) Save(ctx context.Context, c *customerDomain.Customer) error {
	return duplicate(c, r.db.WithContext(ctx).Save(c).Error)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uint64) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return notFound(&out, res.Error)
}

func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	res := lockForUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&out)
	return notFound(&out, res.Error)
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone int64) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	res := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&out)
	return notFound(&out, res.Error)
}

func (r *CustomerRepository) GetByExternalID(ctx context.Context, externalID int64) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	res := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&out)
	return notFound(&out, res.Error)
}

func (r *CustomerRepository) UpdateCurrentDebt(ctx context.Context, id uint64, debt float64) error {
	res := r.db.WithContext(ctx).
		Model(&customerDomain.Customer{}).
		Where("id = ?", id).
		Update("current_debt", debt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL reports 0 affected rows when the value did not change
	var n int64
	if err := r.db.WithContext(ctx).Model(&customerDomain.Customer{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return customerDomain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) ListIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&customerDomain.Customer{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&customerDomain.Customer{}).Count(&n).Error
	return n, err
}

// duplicate names the unique key c collided on. Without an external id the
// phone number is the only unique column that can clash.
func duplicate(c *customerDomain.Customer, err error) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if c.ExternalID == nil {
		return customerDomain.ErrDuplicatePhone
	}
	return customerDomain.ErrDuplicateCustomer
}

func notFound(c *customerDomain.Customer, err error) (*customerDomain.Customer, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, customerDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SQLite has no SELECT ... FOR UPDATE; its writer lock already serializes the tx.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
