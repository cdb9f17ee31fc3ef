package status

import (
	"context"
	"fmt"
	"time"

	"credit-approval-backend/internal/domain/creditscore"
	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/loan"
)

const (
	StateHealthy   = "healthy"
	StateUnhealthy = "unhealthy"

	DBConnected    = "connected"
	DBDisconnected = "disconnected"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Customers    int64 `json:"customers"`
	Loans        int64 `json:"loans"`
	CreditScores int64 `json:"credit_scores"`
}

type StatusDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
	Services  *Services `json:"services,omitempty"`
	Error     string    `json:"error,omitempty"`
}

type Usecase struct {
	db        Pinger
	customers customer.Repository
	loans     loan.Repository
	scores    creditscore.Repository
	version   string
}

func NewUsecase(db Pinger, customers customer.Repository, loans loan.Repository, scores creditscore.Repository, version string) *Usecase {
	return &Usecase{db: db, customers: customers, loans: loans, scores: scores, version: version}
}

// Status never returns an error; failures are reported through the DTO.
func (u *Usecase) Status(ctx context.Context) *StatusDTO {
	out := &StatusDTO{
		Status:    StateHealthy,
		Timestamp: time.Now().UTC(),
		Version:   u.version,
		Database:  DBConnected,
	}
	if err := u.db.PingContext(ctx); err != nil {
		out.Status = StateUnhealthy
		out.Database = DBDisconnected
		out.Error = err.Error()
		return out
	}

	svc, err := u.counts(ctx)
	if err != nil {
		out.Status = StateUnhealthy
		out.Error = err.Error()
		return out
	}
	out.Services = svc
	return out
}

func (u *Usecase) counts(ctx context.Context) (*Services, error) {
	var s Services
	var err error
	if s.Customers, err = u.customers.Count(ctx); err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if s.Loans, err = u.loans.Count(ctx); err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}
	if s.CreditScores, err = u.scores.Count(ctx); err != nil {
		return nil, fmt.Errorf("count credit scores: %w", err)
	}
	return &s, nil
}
