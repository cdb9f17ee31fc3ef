package gormrepo

import (
	"context"
	"errors"

	scoreDomain "credit-approval-backend/internal/domain/creditscore"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditScoreRepository struct{ db *gorm.DB }

func NewCreditScoreRepository(db *gorm.DB) *CreditScoreRepository {
	return &CreditScoreRepository{db: db}
}

func (r *CreditScoreRepository) Upsert(ctx context.Context, s *scoreDomain.CreditScore) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score",
			"past_loans_score",
			"loan_volume_score",
			"current_year_score",
			"credit_utilization_score",
			"calculated_at",
		}),
	}).Create(s).Error
}

func (r *CreditScoreRepository) GetByCustomerID(ctx context.Context, customerID uint64) (*scoreDomain.CreditScore, error) {
	var out scoreDomain.CreditScore
	res := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, scoreDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *CreditScoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&scoreDomain.CreditScore{}).Count(&n).Error
	return n, err
}
