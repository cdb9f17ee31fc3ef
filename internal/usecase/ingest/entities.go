package ingest

import (
	"fmt"
	"time"
)

const (
	CustomerFile = "customer_data.xlsx"
	LoanFile     = "loan_data.xlsx"

	defaultAge = 25
)

// CustomerRow is one line of the customer sheet. Line is 1-based and counts the header.
type CustomerRow struct {
	Line          int
	ExternalID    int64
	FirstName     string
	LastName      string
	Age           int // 0 when the sheet has no age
	PhoneNumber   int64
	MonthlySalary float64
}

// LoanRow is one line of the loan sheet.
type LoanRow struct {
	Line               int
	CustomerExternalID int64
	LegacyLoanID       string
	LoanAmount         float64
	Tenure             int
	InterestRate       float64
	MonthlyRepayment   float64 // 0 when absent
	EMIsPaidOnTime     int
	StartDate          time.Time
	EndDate            *time.Time
}

// RowError marks a sheet line that was skipped.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

type Result struct {
	File    string `json:"file"`
	Total   int    `json:"total_rows"`
	Created int    `json:"created_count"`
	Updated int    `json:"updated_count"`
	Errors  int    `json:"error_count"`
	Skipped bool   `json:"skipped,omitempty"`
}

// Reader parses the spreadsheets. Rows that cannot be parsed come back as
// RowErrors; the error return is for unreadable files or missing columns.
type Reader interface {
	ReadCustomers(path string) ([]CustomerRow, []RowError, error)
	ReadLoans(path string) ([]LoanRow, []RowError, error)
}
