package credit

import (
	"math"
	"time"

	"credit-approval-backend/internal/domain/creditscore"
	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/loan"
)

// Component weights of the overall score. They sum to 1.
const (
	WeightPastLoans   = 0.40
	WeightLoanVolume  = 0.25
	WeightCurrentYear = 0.20
	WeightUtilization = 0.15
)

const (
	neutralPastLoans   = 50.0
	neutralCurrentYear = 30.0

	goodPaymentShare = 0.8
	recentWindowDays = 730
)

// Breakdown is the overall score plus the four sub-scores it was built from.
// Sub-scores are in [0,100] and kept unrounded; Score truncates their
// weighted sum. Snapshot rounds them for storage.
type Breakdown struct {
	Score       int
	PastLoans   float64
	LoanVolume  float64
	CurrentYear float64
	Utilization float64
	// OverLimit is set when approved principal exceeds the approved limit;
	// Score is then forced to 0.
	OverLimit bool
}

// Calculate scores a customer from their full loan history as of now.
func Calculate(c customer.Customer, history []loan.Loan, now time.Time) Breakdown {
	approved := approvedLoans(history)
	debt := sumAmount(approved)

	b := Breakdown{
		PastLoans:   pastLoansScore(history, now),
		LoanVolume:  loanVolumeScore(c, approved, debt, now),
		CurrentYear: currentYearScore(history, now),
		Utilization: utilizationScore(c, history, debt, now),
	}

	raw := b.PastLoans*WeightPastLoans +
		b.LoanVolume*WeightLoanVolume +
		b.CurrentYear*WeightCurrentYear +
		b.Utilization*WeightUtilization
	// 1e-9 absorbs float drift such as 59.999999999 for an exact 60
	b.Score = clampScore(int(math.Floor(raw + 1e-9)))

	if debt > c.ApprovedLimit {
		b.OverLimit = true
		b.Score = 0
	}
	return b
}

func pastLoansScore(history []loan.Loan, now time.Time) float64 {
	if len(history) == 0 {
		return neutralPastLoans
	}

	var closed []loan.Loan
	for _, l := range history {
		if l.Closed(now) {
			closed = append(closed, l)
		}
	}
	if len(closed) == 0 {
		approved := approvedLoans(history)
		if len(approved) == 0 {
			return neutralPastLoans
		}
		return clamp(averagePaymentRatio(approved))
	}

	cutoff := startOfDay(now).AddDate(0, 0, -recentWindowDays)
	var good, excellent, recent, recentGood int
	for _, l := range closed {
		isGood := float64(l.EMIsPaidOnTime) >= float64(l.Tenure)*goodPaymentShare
		if isGood {
			good++
		}
		if l.EMIsPaidOnTime == l.Tenure {
			excellent++
		}
		if !l.StartDate.Before(cutoff) {
			recent++
			if isGood {
				recentGood++
			}
		}
	}

	total := float64(len(closed))
	goodPct := float64(good) / total * 100
	excellenceBonus := float64(excellent) / total * 20
	recentPct := 0.0
	if recent > 0 {
		recentPct = float64(recentGood) / float64(recent) * 100
	}
	return clamp(goodPct*0.6 + excellenceBonus*0.2 + recentPct*0.2)
}

func loanVolumeScore(c customer.Customer, approved []loan.Loan, debt float64, now time.Time) float64 {
	if len(approved) == 0 {
		return 0
	}
	count := float64(len(approved))
	countScore := math.Min(100, count*10)

	amountScore := 0.0
	if c.ApprovedLimit > 0 {
		amountScore = math.Min(100, debt/c.ApprovedLimit*50)
	}

	frequencyScore := 0.0
	days := math.Floor(startOfDay(now).Sub(startOfDay(c.CreatedAt)).Hours() / 24)
	if years := days / 365.25; years > 0 {
		frequencyScore = math.Min(100, count/years*25)
	}

	return clamp(countScore*0.5 + amountScore*0.3 + frequencyScore*0.2)
}

func currentYearScore(history []loan.Loan, now time.Time) float64 {
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	var thisYear, approved []loan.Loan
	for _, l := range history {
		if l.StartDate.Before(yearStart) {
			continue
		}
		thisYear = append(thisYear, l)
		if l.Approved {
			approved = append(approved, l)
		}
	}
	if len(thisYear) == 0 {
		return neutralCurrentYear
	}

	n := float64(len(thisYear))
	countScore := math.Min(100, n*25)
	approvalRate := float64(len(approved)) / n * 100
	performance := 0.0
	if len(approved) > 0 {
		performance = math.Min(100, averagePaymentRatio(approved))
	}
	return clamp(countScore*0.4 + approvalRate*0.3 + performance*0.3)
}

func utilizationScore(c customer.Customer, history []loan.Loan, debt float64, now time.Time) float64 {
	if c.ApprovedLimit <= 0 {
		return 0
	}

	utilization := debt / c.ApprovedLimit
	var utilScore float64
	switch {
	case utilization >= 1.0:
		utilScore = 0
	case utilization >= 0.8:
		utilScore = 20
	case utilization >= 0.6:
		utilScore = 40
	case utilization >= 0.4:
		utilScore = 60
	case utilization >= 0.2:
		utilScore = 80
	default:
		utilScore = 100
	}

	incomeScore := 0.0
	if c.MonthlyIncome > 0 {
		dti := ActiveInstallments(history, now) / c.MonthlyIncome
		switch {
		case dti >= 0.5:
			incomeScore = 0
		case dti >= 0.4:
			incomeScore = 20
		case dti >= 0.3:
			incomeScore = 40
		case dti >= 0.2:
			incomeScore = 60
		case dti >= 0.1:
			incomeScore = 80
		default:
			incomeScore = 100
		}
	}

	availability := 0.0
	if available := c.ApprovedLimit - debt; available > 0 {
		availability = math.Min(100, available/c.ApprovedLimit*100)
	}

	return clamp(utilScore*0.5 + incomeScore*0.3 + availability*0.2)
}

// ActiveInstallments sums the monthly repayment of loans running at now.
func ActiveInstallments(history []loan.Loan, now time.Time) float64 {
	var sum float64
	for i := range history {
		if history[i].Active(now) {
			sum += history[i].MonthlyRepayment
		}
	}
	return sum
}

func approvedLoans(history []loan.Loan) []loan.Loan {
	out := make([]loan.Loan, 0, len(history))
	for _, l := range history {
		if l.Approved {
			out = append(out, l)
		}
	}
	return out
}

func sumAmount(loans []loan.Loan) float64 {
	var sum float64
	for _, l := range loans {
		sum += l.LoanAmount
	}
	return sum
}

func averagePaymentRatio(loans []loan.Loan) float64 {
	if len(loans) == 0 {
		return 0
	}
	var sum float64
	for i := range loans {
		sum += loans[i].PaymentRatio()
	}
	return sum / float64(len(loans))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp(v float64) float64 { return math.Max(0, math.Min(100, v)) }

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Snapshot turns b into the cached credit_scores row for customerID.
func (b Breakdown) Snapshot(customerID uint64, at time.Time) *creditscore.CreditScore {
	return &creditscore.CreditScore{
		CustomerID:             customerID,
		Score:                  b.Score,
		PastLoansScore:         Round2(b.PastLoans),
		LoanVolumeScore:        Round2(b.LoanVolume),
		CurrentYearScore:       Round2(b.CurrentYear),
		CreditUtilizationScore: Round2(b.Utilization),
		CalculatedAt:           at.UTC(),
	}
}
