package credit

import (
	"fmt"
	"math"
	"time"

	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/loan"
)

// Score bands. A score exactly on a boundary falls into the lower band.
const (
	BandExcellent = 50
	BandGood      = 30
	BandFair      = 10

	MinRateGood = 12.0
	MinRateFair = 16.0

	// MaxEMIToIncomeRatio caps all active installments against monthly income.
	MaxEMIToIncomeRatio = 0.5
)

type RejectReason string

const (
	ReasonNone             RejectReason = ""
	ReasonOverLimit        RejectReason = "over_limit"
	ReasonLowScore         RejectReason = "low_score"
	ReasonEMIExceedsIncome RejectReason = "emi_exceeds_income"
)

const MessageApproved = "Loan approved successfully"

type Request struct {
	LoanAmount   float64
	InterestRate float64
	Tenure       int
}

type Decision struct {
	Approved              bool
	CreditScore           int
	Breakdown             Breakdown
	InterestRate          float64
	CorrectedInterestRate float64
	MonthlyInstallment    float64
	Reason                RejectReason
	Message               string
}

// CorrectRate applies the score bands to a requested annual rate. ok is false
// when the score is too low to lend at any rate.
func CorrectRate(score int, requested float64) (rate float64, ok bool) {
	switch {
	case score > BandExcellent:
		return requested, true
	case score > BandGood:
		return math.Max(requested, MinRateGood), true
	case score > BandFair:
		return math.Max(requested, MinRateFair), true
	default:
		return requested, false
	}
}

// Evaluate decides a loan request against the customer's history. It has no
// side effects; callers persist the outcome.
func Evaluate(c customer.Customer, history []loan.Loan, req Request, now time.Time) Decision {
	b := Calculate(c, history, now)
	d := Decision{
		CreditScore:           b.Score,
		Breakdown:             b,
		InterestRate:          req.InterestRate,
		CorrectedInterestRate: req.InterestRate,
	}

	if b.OverLimit {
		d.Reason = ReasonOverLimit
		d.Message = "Loan rejected: Current debt exceeds approved limit"
		return d
	}

	rate, ok := CorrectRate(b.Score, req.InterestRate)
	if !ok {
		d.Reason = ReasonLowScore
		d.Message = fmt.Sprintf("Loan rejected: Credit score %d is below minimum threshold", b.Score)
		return d
	}
	d.CorrectedInterestRate = rate
	d.MonthlyInstallment = MonthlyInstallment(req.LoanAmount, rate, req.Tenure)

	committed := ActiveInstallments(history, now)
	if d.MonthlyInstallment+committed > c.MonthlyIncome*MaxEMIToIncomeRatio {
		d.Reason = ReasonEMIExceedsIncome
		d.Message = fmt.Sprintf("Loan rejected: EMI (%.2f) plus active installments (%.2f) exceeds %.0f%% of monthly income",
			d.MonthlyInstallment, committed, MaxEMIToIncomeRatio*100)
		return d
	}

	d.Approved = true
	d.Message = MessageApproved
	return d
}
