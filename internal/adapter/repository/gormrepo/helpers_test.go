package gormrepo

import (
	"testing"
	"time"

	customerDomain "credit-approval-backend/internal/domain/customer"
	loanDomain "credit-approval-backend/internal/domain/loan"
	infraDB "credit-approval-backend/internal/infrastructure/db"
	"credit-approval-backend/pkg/id"

	"gorm.io/gorm"
)

// openTestDB opens an in-memory sqlite DB with the real schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infraDB.OpenGorm(infraDB.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infraDB.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func makeCustomer(phone int64, income float64) *customerDomain.Customer {
	return &customerDomain.Customer{
		FirstName:     "Asha",
		LastName:      "Rao",
		Age:           30,
		PhoneNumber:   phone,
		MonthlyIncome: income,
		ApprovedLimit: income * 36,
	}
}

func makeLoan(customerID uint64, amount float64, approved bool, start time.Time) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:           id.NewLoanID(),
		CustomerID:       customerID,
		LoanAmount:       amount,
		Tenure:           12,
		InterestRate:     12,
		MonthlyRepayment: 888.49,
		Approved:         approved,
		StartDate:        start,
		EndDate:          loanDomain.EndDateFor(start, 12),
	}
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
