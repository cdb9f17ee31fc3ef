package credit

import (
	"math"
	"testing"
	"time"

	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/loan"
)

var refNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func newCustomer(income float64, created time.Time) customer.Customer {
	return customer.Customer{
		ID:            1,
		FirstName:     "Asha",
		LastName:      "Rao",
		Age:           30,
		PhoneNumber:   9876543210,
		MonthlyIncome: income,
		ApprovedLimit: ApprovedLimit(income),
		CreatedAt:     created,
	}
}

func mkLoan(amount float64, tenure, paid int, approved bool, start time.Time, emi float64) loan.Loan {
	return loan.Loan{
		LoanAmount:       amount,
		Tenure:           tenure,
		InterestRate:     12,
		MonthlyRepayment: emi,
		EMIsPaidOnTime:   paid,
		Approved:         approved,
		StartDate:        start,
		EndDate:          loan.EndDateFor(start, tenure),
	}
}

// A customer with three fully repaid recent loans.
func goodHistory() (customer.Customer, []loan.Loan) {
	c := newCustomer(50_000, day(2023, 6, 15))
	start := day(2024, 1, 1)
	return c, []loan.Loan{
		mkLoan(100_000, 12, 12, true, start, 8_884.88),
		mkLoan(100_000, 12, 12, true, start, 8_884.88),
		mkLoan(100_000, 12, 12, true, start, 8_884.88),
	}
}

// One approved loan near the limit with nothing repaid, plus a refused one this year.
func poorHistory() (customer.Customer, []loan.Loan) {
	c := customer.Customer{ID: 2, MonthlyIncome: 3_000, ApprovedLimit: 100_000, CreatedAt: day(2019, 6, 15)}
	return c, []loan.Loan{
		mkLoan(99_000, 24, 0, true, day(2024, 9, 1), 4_000),
		mkLoan(10_000, 12, 0, false, day(2025, 3, 1), 900),
	}
}

func TestCalculate_EmptyHistoryUsesNeutralDefaults(t *testing.T) {
	c := newCustomer(50_000, refNow)
	b := Calculate(c, nil, refNow)

	if b.PastLoans != 50 || b.LoanVolume != 0 || b.CurrentYear != 30 || b.Utilization != 100 {
		t.Fatalf("unexpected components: %+v", b)
	}
	// 50*.4 + 0*.25 + 30*.2 + 100*.15
	if b.Score != 41 {
		t.Fatalf("score = %d, want 41", b.Score)
	}
	if b.OverLimit {
		t.Fatalf("empty history cannot be over limit")
	}
}

func TestCalculate_GoodHistoryScoresAboveFifty(t *testing.T) {
	c, history := goodHistory()
	b := Calculate(c, history, refNow)

	if b.PastLoans != 84 {
		t.Fatalf("past loans = %v, want 84", b.PastLoans)
	}
	if b.CurrentYear != 30 {
		t.Fatalf("current year = %v, want neutral 30 (no loans this year)", b.CurrentYear)
	}
	if b.Score <= BandExcellent {
		t.Fatalf("score = %d, want > %d (%+v)", b.Score, BandExcellent, b)
	}
}

func TestCalculate_PoorHistoryScoresAtMostTen(t *testing.T) {
	c, history := poorHistory()
	b := Calculate(c, history, refNow)

	if b.PastLoans != 0 {
		t.Fatalf("past loans = %v, want 0", b.PastLoans)
	}
	if b.Score > BandFair {
		t.Fatalf("score = %d, want <= %d (%+v)", b.Score, BandFair, b)
	}
	if b.OverLimit {
		t.Fatalf("99k of 100k is not over limit")
	}
}

func TestCalculate_OverLimitForcesZero(t *testing.T) {
	c, history := goodHistory()
	c.ApprovedLimit = 200_000 // three approved loans total 300k

	b := Calculate(c, history, refNow)
	if !b.OverLimit || b.Score != 0 {
		t.Fatalf("want forced zero, got %+v", b)
	}
	if b.PastLoans == 0 {
		t.Fatalf("components should still be reported: %+v", b)
	}
}

func TestCalculate_UnapprovedLoansDoNotCountTowardsLimit(t *testing.T) {
	c := newCustomer(10_000, day(2024, 1, 1)) // limit 400k
	history := []loan.Loan{mkLoan(900_000, 12, 0, false, day(2025, 1, 1), 80_000)}

	if b := Calculate(c, history, refNow); b.OverLimit {
		t.Fatalf("refused loan must not trip the limit: %+v", b)
	}
}

func TestCalculate_CurrentYearActivity(t *testing.T) {
	c := newCustomer(50_000, day(2024, 1, 1))
	history := []loan.Loan{
		mkLoan(50_000, 12, 6, true, day(2025, 1, 10), 4_442.44),
		mkLoan(50_000, 12, 0, false, day(2025, 2, 10), 4_442.44),
	}
	b := Calculate(c, history, refNow)

	// count 2 -> 50*.4, approval 50% -> 50*.3, performance 50% -> 50*.3
	if b.CurrentYear != 50 {
		t.Fatalf("current year = %v, want 50", b.CurrentYear)
	}
}

func TestCalculate_ScoreTruncatesUnroundedWeightedSum(t *testing.T) {
	for _, build := range []func() (customer.Customer, []loan.Loan){goodHistory, poorHistory} {
		c, history := build()
		b := Calculate(c, history, refNow)
		raw := b.PastLoans*WeightPastLoans + b.LoanVolume*WeightLoanVolume +
			b.CurrentYear*WeightCurrentYear + b.Utilization*WeightUtilization
		if want := int(math.Floor(raw + 1e-9)); b.Score != want {
			t.Fatalf("score = %d, want floor(%v) = %d", b.Score, raw, want)
		}
	}

	// goodHistory's loan volume has more than two decimals
	c, history := goodHistory()
	if b := Calculate(c, history, refNow); b.LoanVolume == Round2(b.LoanVolume) {
		t.Fatalf("loan volume %v was rounded before weighting", b.LoanVolume)
	}
}

func TestCalculate_ScoreAlwaysWithinBounds(t *testing.T) {
	starts := []time.Time{day(2018, 3, 1), day(2023, 7, 1), day(2024, 12, 31), day(2025, 1, 1), day(2025, 6, 1)}
	for i, income := range []float64{2_000, 25_000, 75_000, 400_000} {
		c := newCustomer(income, day(2020+i, 1, 1))
		var history []loan.Loan
		for j, s := range starts {
			history = append(history, mkLoan(float64(10_000*(j+1)*(i+1)), 6*(j+1), j*(i+1), (i+j)%2 == 0, s, float64(1_000*(j+1))))
			b := Calculate(c, history, refNow)
			if b.Score < 0 || b.Score > 100 {
				t.Fatalf("score out of range: %+v", b)
			}
			for _, v := range []float64{b.PastLoans, b.LoanVolume, b.CurrentYear, b.Utilization} {
				if v < 0 || v > 100 {
					t.Fatalf("component out of range: %+v", b)
				}
			}
		}
	}
}

func TestActiveInstallments(t *testing.T) {
	history := []loan.Loan{
		mkLoan(100_000, 24, 3, true, day(2025, 1, 1), 1_000),  // running
		mkLoan(100_000, 24, 24, true, day(2025, 1, 1), 2_000), // repaid early
		mkLoan(100_000, 12, 0, true, day(2023, 1, 1), 4_000),  // ended
		mkLoan(100_000, 24, 0, false, day(2025, 1, 1), 8_000), // refused
		mkLoan(100_000, 24, 0, true, day(2025, 7, 1), 16_000), // not started
	}
	if got := ActiveInstallments(history, refNow); got != 1_000 {
		t.Fatalf("active installments = %v, want 1000", got)
	}
}

func TestBreakdown_Snapshot(t *testing.T) {
	c, history := goodHistory()
	b := Calculate(c, history, refNow)

	s := b.Snapshot(c.ID, refNow)
	if s.CustomerID != c.ID || s.Score != b.Score {
		t.Fatalf("snapshot mismatch: %+v vs %+v", s, b)
	}
	if s.PastLoansScore != Round2(b.PastLoans) || s.LoanVolumeScore != Round2(b.LoanVolume) ||
		s.CurrentYearScore != Round2(b.CurrentYear) || s.CreditUtilizationScore != Round2(b.Utilization) {
		t.Fatalf("components not copied: %+v", s)
	}
	if s.LoanVolumeScore == b.LoanVolume {
		t.Fatalf("loan volume %v should need rounding for storage", b.LoanVolume)
	}
	if !s.CalculatedAt.Equal(refNow) {
		t.Fatalf("calculated_at = %v", s.CalculatedAt)
	}
}
