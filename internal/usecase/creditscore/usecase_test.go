package creditscore

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "credit-approval-backend/internal/domain/creditscore"
	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/loan"
	"credit-approval-backend/internal/testutil/creditscoremock"
	"credit-approval-backend/internal/testutil/customermock"
	"credit-approval-backend/internal/testutil/loanmock"
)

var refNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func knownCustomers(ids ...uint64) *customermock.Repo {
	known := map[uint64]bool{}
	for _, id := range ids {
		known[id] = true
	}
	return &customermock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*customer.Customer, error) {
			if !known[id] {
				return nil, customer.ErrNotFound
			}
			return &customer.Customer{ID: id, MonthlyIncome: 50_000, ApprovedLimit: 1_800_000, CreatedAt: refNow}, nil
		},
		ListIDsFn: func(context.Context) ([]uint64, error) { return ids, nil },
	}
}

func noLoans() *loanmock.Repo {
	return &loanmock.Repo{
		ListByCustomerIDFn: func(context.Context, uint64) ([]loan.Loan, error) { return nil, nil },
	}
}

func TestGet_ReturnsCachedSnapshot(t *testing.T) {
	cached := &domain.CreditScore{
		CustomerID: 3, Score: 72,
		PastLoansScore: 90, LoanVolumeScore: 40, CurrentYearScore: 55.5, CreditUtilizationScore: 80,
		CalculatedAt: refNow.Add(-time.Hour),
	}
	scores := &creditscoremock.Repo{
		GetByCustomerIDFn: func(context.Context, uint64) (*domain.CreditScore, error) { return cached, nil },
		UpsertFn: func(context.Context, *domain.CreditScore) error {
			t.Fatalf("a cached score must not be recalculated")
			return nil
		},
	}
	uc := NewUsecase(knownCustomers(3), noLoans(), scores).WithClock(func() time.Time { return refNow })

	dto, err := uc.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if dto.CreditScore != 72 || dto.ScoreGrade != "Excellent" || dto.Components.CurrentYearScore != 55.5 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if !dto.CalculatedAt.Equal(cached.CalculatedAt) {
		t.Fatalf("calculated_at = %v", dto.CalculatedAt)
	}
}

func TestGet_CalculatesWhenMissing(t *testing.T) {
	var stored *domain.CreditScore
	scores := &creditscoremock.Repo{
		GetByCustomerIDFn: func(context.Context, uint64) (*domain.CreditScore, error) { return nil, domain.ErrNotFound },
		UpsertFn: func(_ context.Context, s *domain.CreditScore) error {
			stored = s
			return nil
		},
	}
	uc := NewUsecase(knownCustomers(3), noLoans(), scores).WithClock(func() time.Time { return refNow })

	dto, err := uc.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored == nil || stored.Score != 41 {
		t.Fatalf("snapshot not stored: %+v", stored)
	}
	if dto.CreditScore != 41 || dto.ScoreGrade != "Good" || dto.Components.PastLoansScore != 50 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if !dto.CalculatedAt.Equal(refNow) {
		t.Fatalf("calculated_at = %v, want %v", dto.CalculatedAt, refNow)
	}
}

func TestGet_UnknownCustomer(t *testing.T) {
	uc := NewUsecase(knownCustomers(3), noLoans(), &creditscoremock.Repo{})
	if _, err := uc.Get(context.Background(), 4); !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRecalculateAll_CountsFailures(t *testing.T) {
	loans := &loanmock.Repo{
		ListByCustomerIDFn: func(_ context.Context, id uint64) ([]loan.Loan, error) {
			if id == 2 {
				return nil, errors.New("boom")
			}
			return nil, nil
		},
	}
	upserts := 0
	scores := &creditscoremock.Repo{
		UpsertFn: func(context.Context, *domain.CreditScore) error {
			upserts++
			return nil
		},
	}
	uc := NewUsecase(knownCustomers(1, 2, 3), loans, scores).WithClock(func() time.Time { return refNow })

	res, err := uc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("RecalculateAll: %v", err)
	}
	if res.Total != 3 || res.Updated != 2 || res.Failed != 1 {
		t.Fatalf("result = %+v, want 3/2/1", res)
	}
	if upserts != 2 {
		t.Fatalf("upserts = %d, want 2", upserts)
	}
}

func TestRecalculateAll_ListFailure(t *testing.T) {
	custs := &customermock.Repo{} // default ListIDs returns context.Canceled
	uc := NewUsecase(custs, noLoans(), &creditscoremock.Repo{})
	if _, err := uc.RecalculateAll(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestRecalculateAll_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	uc := NewUsecase(knownCustomers(1, 2), noLoans(), &creditscoremock.Repo{})

	res, err := uc.RecalculateAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if res.Updated != 0 {
		t.Fatalf("no customer should be processed after cancel: %+v", res)
	}
}
