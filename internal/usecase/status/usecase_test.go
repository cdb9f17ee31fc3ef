package status

import (
	"context"
	"errors"
	"strings"
	"testing"

	"credit-approval-backend/internal/testutil/creditscoremock"
	"credit-approval-backend/internal/testutil/customermock"
	"credit-approval-backend/internal/testutil/loanmock"
)

type pingFn func(ctx context.Context) error

func (f pingFn) PingContext(ctx context.Context) error { return f(ctx) }

func okPing(context.Context) error { return nil }

func counting(c, l, s int64) (*customermock.Repo, *loanmock.Repo, *creditscoremock.Repo) {
	return &customermock.Repo{CountFn: func(context.Context) (int64, error) { return c, nil }},
		&loanmock.Repo{CountFn: func(context.Context) (int64, error) { return l, nil }},
		&creditscoremock.Repo{CountFn: func(context.Context) (int64, error) { return s, nil }}
}

func TestStatus_Healthy(t *testing.T) {
	c, l, s := counting(150, 450, 120)
	uc := NewUsecase(pingFn(okPing), c, l, s, "1.0.0")

	got := uc.Status(context.Background())
	if got.Status != StateHealthy || got.Database != DBConnected || got.Version != "1.0.0" {
		t.Fatalf("unexpected status: %+v", got)
	}
	if got.Services == nil || got.Services.Customers != 150 || got.Services.Loans != 450 || got.Services.CreditScores != 120 {
		t.Fatalf("unexpected counts: %+v", got.Services)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestStatus_DatabaseDown(t *testing.T) {
	c, l, s := counting(1, 1, 1)
	c.CountFn = func(context.Context) (int64, error) {
		t.Fatalf("counts must be skipped when the ping fails")
		return 0, nil
	}
	uc := NewUsecase(pingFn(func(context.Context) error { return errors.New("refused") }), c, l, s, "1.0.0")

	got := uc.Status(context.Background())
	if got.Status != StateUnhealthy || got.Database != DBDisconnected || got.Services != nil {
		t.Fatalf("unexpected status: %+v", got)
	}
	if got.Error != "refused" {
		t.Fatalf("error = %q", got.Error)
	}
}

func TestStatus_CountFailure(t *testing.T) {
	c, l, s := counting(1, 1, 1)
	l.CountFn = func(context.Context) (int64, error) { return 0, errors.New("no table") }
	uc := NewUsecase(pingFn(okPing), c, l, s, "1.0.0")

	got := uc.Status(context.Background())
	if got.Status != StateUnhealthy || got.Database != DBConnected {
		t.Fatalf("unexpected status: %+v", got)
	}
	if !strings.Contains(got.Error, "count loans") {
		t.Fatalf("error = %q", got.Error)
	}
}
