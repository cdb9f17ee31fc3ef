package loan

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("loan not found")
)

// Table: loans
type Loan struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (UUID string)
	LoanID string `gorm:"column:loan_id;size:36;not null;uniqueIndex:ux_loans_loan_id"`
	// Spreadsheet identifier for imported history
	LegacyLoanID *string `gorm:"column:legacy_loan_id;size:50;uniqueIndex:ux_loans_legacy_loan_id"`
	// FK to customers.id
	CustomerID       uint64    `gorm:"column:customer_id;not null;index:idx_loans_customer_approved"`
	LoanAmount       float64   `gorm:"column:loan_amount;type:decimal(15,2);not null"`
	Tenure           int       `gorm:"column:tenure;not null"`
	InterestRate     float64   `gorm:"column:interest_rate;type:decimal(5,2);not null"`
	MonthlyRepayment float64   `gorm:"column:monthly_repayment;type:decimal(12,2);not null"`
	EMIsPaidOnTime   int       `gorm:"column:emis_paid_on_time;not null;default:0"`
	Approved         bool      `gorm:"column:loan_approved;not null;default:false;index:idx_loans_customer_approved"`
	StartDate        time.Time `gorm:"column:start_date;type:date;not null;index:idx_loans_dates"`
	EndDate          time.Time `gorm:"column:end_date;type:date;not null;index:idx_loans_dates"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) RepaymentsLeft() int {
	if left := l.Tenure - l.EMIsPaidOnTime; left > 0 {
		return left
	}
	return 0
}

// Closed loans are fully repaid or past their end date.
func (l *Loan) Closed(today time.Time) bool {
	return l.EMIsPaidOnTime >= l.Tenure || l.EndDate.Before(truncDay(today))
}

// Active loans are approved, running today, and still owe installments.
func (l *Loan) Active(today time.Time) bool {
	d := truncDay(today)
	return l.Approved &&
		!l.StartDate.After(d) &&
		!l.EndDate.Before(d) &&
		l.RepaymentsLeft() > 0
}

// PaymentRatio is the share of installments paid on time, in percent.
func (l *Loan) PaymentRatio() float64 {
	if l.Tenure <= 0 {
		return 0
	}
	return float64(l.EMIsPaidOnTime) * 100 / float64(l.Tenure)
}

// EndDateFor returns start shifted by tenure calendar months. The day is
// clamped to the last day of the target month (Jan 31 + 1 = Feb 28/29).
func EndDateFor(start time.Time, tenure int) time.Time {
	y, m, d := start.Date()
	first := time.Date(y, m+time.Month(tenure), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func truncDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
