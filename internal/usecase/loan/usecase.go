package loan

import (
	"context"
	"fmt"
	"time"

	"credit-approval-backend/internal/domain/credit"
	"credit-approval-backend/internal/domain/creditscore"
	"credit-approval-backend/internal/domain/customer"
	domainLoan "credit-approval-backend/internal/domain/loan"
	"credit-approval-backend/internal/domain/uow"
	"credit-approval-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

type Usecase struct {
	customers customer.Repository
	loans     domainLoan.Repository
	scores    creditscore.Repository
	uow       uow.UnitOfWork
	now       func() time.Time
}

// NewUsecase: read paths use the repos directly, loan creation goes through tx.
func NewUsecase(customers customer.Repository, loans domainLoan.Repository, scores creditscore.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		customers: customers,
		loans:     loans,
		scores:    scores,
		uow:       tx,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the reference time used for scoring and loan dates.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// CheckEligibility evaluates a request without creating a loan. The computed
// score is cached as a side effect.
func (u *Usecase) CheckEligibility(ctx context.Context, in LoanRequest) (*EligibilityDTO, error) {
	c, err := u.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	history, err := u.loans.ListByCustomerID(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("load loan history: %w", err)
	}

	now := u.now()
	d := credit.Evaluate(*c, history, toCreditRequest(in), now)

	if err := u.scores.Upsert(ctx, d.Breakdown.Snapshot(c.ID, now)); err != nil {
		// the answer is still valid without the cached snapshot
		logrus.WithError(err).WithField("customer_id", c.ID).Warn("cache credit score")
	}

	out := &EligibilityDTO{
		CustomerID:            c.ID,
		Approval:              d.Approved,
		InterestRate:          d.InterestRate,
		CorrectedInterestRate: d.CorrectedInterestRate,
		Tenure:                in.Tenure,
		MonthlyInstallment:    d.MonthlyInstallment,
	}
	if !d.Approved {
		out.Message = d.Message
	}
	return out, nil
}

// Create re-evaluates the request under the customer's row lock and records
// the loan, approved or not. An approved loan also moves current_debt.
func (u *Usecase) Create(ctx context.Context, in LoanRequest) (*CreatedLoanDTO, error) {
	var dto *CreatedLoanDTO

	err := u.uow.WithinCustomerTx(ctx, in.CustomerID, func(r uow.Repos, c *customer.Customer) error {
		history, err := r.Loans.ListByCustomerID(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("load loan history: %w", err)
		}

		now := u.now()
		d := credit.Evaluate(*c, history, toCreditRequest(in), now)

		start := startOfDay(now)
		l := &domainLoan.Loan{
			LoanID:           id.NewLoanID(),
			CustomerID:       c.ID,
			LoanAmount:       credit.Round2(in.LoanAmount),
			Tenure:           in.Tenure,
			InterestRate:     d.CorrectedInterestRate,
			MonthlyRepayment: d.MonthlyInstallment,
			Approved:         d.Approved,
			StartDate:        start,
			EndDate:          domainLoan.EndDateFor(start, in.Tenure),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}

		if d.Approved {
			debt, err := r.Loans.SumApprovedAmount(ctx, c.ID)
			if err != nil {
				return fmt.Errorf("sum approved loans: %w", err)
			}
			if err := r.Customers.UpdateCurrentDebt(ctx, c.ID, debt); err != nil {
				return fmt.Errorf("update current debt: %w", err)
			}
		}

		if err := r.CreditScores.Upsert(ctx, d.Breakdown.Snapshot(c.ID, now)); err != nil {
			return fmt.Errorf("cache credit score: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"loan_id":     l.LoanID,
			"customer_id": c.ID,
			"approved":    d.Approved,
			"reason":      string(d.Reason),
			"score":       d.CreditScore,
		}).Info("loan created")

		dto = &CreatedLoanDTO{
			LoanID:             l.LoanID,
			CustomerID:         c.ID,
			LoanApproved:       d.Approved,
			Message:            d.Message,
			MonthlyInstallment: d.MonthlyInstallment,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns one loan with its customer. Malformed ids are reported as not found.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDetailDTO, error) {
	if !id.IsLoanID(loanID) {
		return nil, domainLoan.ErrNotFound
	}
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	c, err := u.customers.GetByID(ctx, l.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("loan %s owner: %w", l.LoanID, err)
	}
	return &LoanDetailDTO{
		LoanID: l.LoanID,
		Customer: LoanCustomerDTO{
			ID:          c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			PhoneNumber: c.PhoneNumber,
			Age:         c.Age,
		},
		LoanAmount:         l.LoanAmount,
		InterestRate:       l.InterestRate,
		Tenure:             l.Tenure,
		MonthlyInstallment: l.MonthlyRepayment,
	}, nil
}

// ListByCustomer returns the customer's approved loans, newest first.
func (u *Usecase) ListByCustomer(ctx context.Context, customerID uint64) ([]CustomerLoanDTO, error) {
	if _, err := u.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	loans, err := u.loans.ListApprovedByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerLoanDTO, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		out = append(out, CustomerLoanDTO{
			LoanID:             l.LoanID,
			LoanAmount:         l.LoanAmount,
			InterestRate:       l.InterestRate,
			RepaymentsLeft:     l.RepaymentsLeft(),
			MonthlyInstallment: l.MonthlyRepayment,
		})
	}
	return out, nil
}

func toCreditRequest(in LoanRequest) credit.Request {
	return credit.Request{LoanAmount: in.LoanAmount, InterestRate: in.InterestRate, Tenure: in.Tenure}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
