package gormrepo

import (
	"context"
	"errors"

	loanDomain "credit-approval-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx (a savepoint
// when r is already inside one).
func (r *LoanRepository) Tx(ctx context.Context, fn func(repo loanDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LoanRepository{db: tx})
	})
}

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) GetByLegacyID(ctx context.Context, legacyID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("legacy_loan_id = ?", legacyID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) ListByCustomerID(ctx context.Context, customerID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListApprovedByCustomerID(ctx context.Context, customerID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND loan_approved = ?", customerID, true).
		Order("start_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) SumApprovedAmount(ctx context.Context, customerID uint64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select("COALESCE(SUM(loan_amount), 0)").
		Where("customer_id = ? AND loan_approved = ?", customerID, true).
		Row().
		Scan(&total)
	return total, err
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Count(&n).Error
	return n, err
}
