package creditscore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credit-approval-backend/internal/domain/credit"
	domain "credit-approval-backend/internal/domain/creditscore"
	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/loan"

	"github.com/sirupsen/logrus"
)

type Usecase struct {
	customers customer.Repository
	loans     loan.Repository
	scores    domain.Repository
	now       func() time.Time
}

func NewUsecase(customers customer.Repository, loans loan.Repository, scores domain.Repository) *Usecase {
	return &Usecase{
		customers: customers,
		loans:     loans,
		scores:    scores,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Get returns the cached score, calculating it first when none exists yet.
func (u *Usecase) Get(ctx context.Context, customerID uint64) (*CreditScoreDTO, error) {
	if _, err := u.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	s, err := u.scores.GetByCustomerID(ctx, customerID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if s, err = u.Recalculate(ctx, customerID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	return toDTO(s), nil
}

// Recalculate scores the customer from its current history and stores the snapshot.
func (u *Usecase) Recalculate(ctx context.Context, customerID uint64) (*domain.CreditScore, error) {
	c, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	history, err := u.loans.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load loan history: %w", err)
	}
	now := u.now()
	s := credit.Calculate(*c, history, now).Snapshot(customerID, now)
	if err := u.scores.Upsert(ctx, s); err != nil {
		return nil, fmt.Errorf("store credit score: %w", err)
	}
	return s, nil
}

// RecalculateAll refreshes every customer's snapshot. Per-customer failures are
// logged and counted; only a failure to list customers is returned.
func (u *Usecase) RecalculateAll(ctx context.Context) (RecalcResult, error) {
	var res RecalcResult
	ids, err := u.customers.ListIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("list customers: %w", err)
	}
	res.Total = len(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, err := u.Recalculate(ctx, id); err != nil {
			res.Failed++
			logrus.WithError(err).WithField("customer_id", id).Warn("recalculate credit score")
			continue
		}
		res.Updated++
	}

	logrus.WithFields(logrus.Fields{
		"total":   res.Total,
		"updated": res.Updated,
		"failed":  res.Failed,
	}).Info("credit scores recalculated")
	return res, nil
}

func toDTO(s *domain.CreditScore) *CreditScoreDTO {
	return &CreditScoreDTO{
		CustomerID:  s.CustomerID,
		CreditScore: s.Score,
		ScoreGrade:  domain.Grade(s.Score),
		Components: Components{
			PastLoansScore:         s.PastLoansScore,
			LoanVolumeScore:        s.LoanVolumeScore,
			CurrentYearScore:       s.CurrentYearScore,
			CreditUtilizationScore: s.CreditUtilizationScore,
		},
		CalculatedAt: s.CalculatedAt,
	}
}
