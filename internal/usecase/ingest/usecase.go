package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"credit-approval-backend/internal/domain/credit"
	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/loan"
	"credit-approval-backend/internal/domain/uow"
	"credit-approval-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

var (
	ErrPhoneFormat      = errors.New("phone number must have 10 digits")
	ErrIncome           = errors.New("monthly salary must be positive")
	ErrAge              = errors.New("age out of range")
	ErrName             = errors.New("first and last name are required")
	ErrLoanAmount       = errors.New("loan amount must be positive")
	ErrTenure           = errors.New("tenure must be between 1 and 120")
	ErrPaidCount        = errors.New("emis paid on time out of range")
	ErrUnknownCustomer  = errors.New("customer not found for loan")
	ErrMissingLoanID    = errors.New("loan id is required")
	ErrMissingStartDate = errors.New("start date is required")
	ErrExternalIDTaken  = errors.New("customer id already belongs to another phone number")
)

type Usecase struct {
	reader Reader
	uow    uow.UnitOfWork
}

func NewUsecase(r Reader, tx uow.UnitOfWork) *Usecase { return &Usecase{reader: r, uow: tx} }

// LoadAll loads DATA_DIR/customer_data.xlsx, then DATA_DIR/loan_data.xlsx.
// A missing file is skipped with a warning.
func (u *Usecase) LoadAll(ctx context.Context, dir string) ([]Result, error) {
	cust, err := u.LoadCustomers(ctx, filepath.Join(dir, CustomerFile))
	if err != nil {
		return []Result{cust}, err
	}
	loans, err := u.LoadLoans(ctx, filepath.Join(dir, LoanFile))
	return []Result{cust, loans}, err
}

// LoadCustomers upserts customers by phone number in one transaction. Each
// row is written on its own savepoint so a rejected row only undoes itself.
func (u *Usecase) LoadCustomers(ctx context.Context, path string) (Result, error) {
	res := Result{File: path}
	if skip(path) {
		res.Skipped = true
		return res, nil
	}
	rows, rowErrs, err := u.reader.ReadCustomers(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}
	res.Total = len(rows) + len(rowErrs)
	res.Errors = len(rowErrs)
	logRowErrors(path, rowErrs)

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		res.Created, res.Updated = 0, 0
		for _, row := range rows {
			if err := validateCustomer(row); err != nil {
				res.Errors++
				logRowErrors(path, []RowError{{Line: row.Line, Err: err}})
				continue
			}
			var created bool
			err := r.Customers.Tx(ctx, func(repo customer.Repository) error {
				var err error
				created, err = upsertCustomer(ctx, repo, row)
				return err
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				res.Errors++
				logRowErrors(path, []RowError{{Line: row.Line, Err: err}})
				continue
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	logResult(res)
	return res, nil
}

// LoadLoans upserts loans by their sheet id in one transaction, a savepoint
// per row, and then recomputes every customer's current_debt.
func (u *Usecase) LoadLoans(ctx context.Context, path string) (Result, error) {
	res := Result{File: path}
	if skip(path) {
		res.Skipped = true
		return res, nil
	}
	rows, rowErrs, err := u.reader.ReadLoans(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}
	res.Total = len(rows) + len(rowErrs)
	res.Errors = len(rowErrs)
	logRowErrors(path, rowErrs)

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		res.Created, res.Updated = 0, 0
		owners := map[int64]uint64{}
		for _, row := range rows {
			if err := validateLoan(row); err != nil {
				res.Errors++
				logRowErrors(path, []RowError{{Line: row.Line, Err: err}})
				continue
			}

			customerID, ok := owners[row.CustomerExternalID]
			if !ok {
				c, err := r.Customers.GetByExternalID(ctx, row.CustomerExternalID)
				switch {
				case errors.Is(err, customer.ErrNotFound):
					res.Errors++
					logRowErrors(path, []RowError{{Line: row.Line, Err: fmt.Errorf("%w: %d", ErrUnknownCustomer, row.CustomerExternalID)}})
					continue
				case err != nil:
					return fmt.Errorf("line %d: %w", row.Line, err)
				}
				customerID = c.ID
				owners[row.CustomerExternalID] = customerID
			}

			var created bool
			err := r.Loans.Tx(ctx, func(repo loan.Repository) error {
				var err error
				created, err = upsertLoan(ctx, repo, customerID, row)
				return err
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				res.Errors++
				logRowErrors(path, []RowError{{Line: row.Line, Err: err}})
				continue
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		return recomputeDebts(ctx, r)
	})
	if err != nil {
		return res, err
	}
	logResult(res)
	return res, nil
}

func upsertCustomer(ctx context.Context, repo customer.Repository, row CustomerRow) (created bool, err error) {
	age := row.Age
	if age == 0 {
		age = defaultAge
	}
	ext := row.ExternalID

	c, err := repo.GetByPhone(ctx, row.PhoneNumber)
	switch {
	case errors.Is(err, customer.ErrNotFound):
		c = &customer.Customer{PhoneNumber: row.PhoneNumber}
		created = true
	case err != nil:
		return false, err
	}

	owner, err := repo.GetByExternalID(ctx, ext)
	switch {
	case errors.Is(err, customer.ErrNotFound):
	case err != nil:
		return false, err
	case created || owner.ID != c.ID:
		return false, fmt.Errorf("%w: %d", ErrExternalIDTaken, ext)
	}

	c.ExternalID = &ext
	c.FirstName = row.FirstName
	c.LastName = row.LastName
	c.Age = age
	c.MonthlyIncome = credit.Round2(row.MonthlySalary)
	c.ApprovedLimit = credit.ApprovedLimit(row.MonthlySalary)

	if created {
		return true, repo.Create(ctx, c)
	}
	return false, repo.Save(ctx, c)
}

func upsertLoan(ctx context.Context, repo loan.Repository, customerID uint64, row LoanRow) (created bool, err error) {
	l, err := repo.GetByLegacyID(ctx, row.LegacyLoanID)
	switch {
	case errors.Is(err, loan.ErrNotFound):
		legacy := row.LegacyLoanID
		l = &loan.Loan{LoanID: id.NewLoanID(), LegacyLoanID: &legacy}
		created = true
	case err != nil:
		return false, err
	}

	start := row.StartDate.UTC()
	end := loan.EndDateFor(start, row.Tenure)
	if row.EndDate != nil {
		end = row.EndDate.UTC()
	}
	emi := credit.Round2(row.MonthlyRepayment)
	if emi <= 0 {
		emi = credit.MonthlyInstallment(row.LoanAmount, row.InterestRate, row.Tenure)
	}

	l.CustomerID = customerID
	l.LoanAmount = credit.Round2(row.LoanAmount)
	l.Tenure = row.Tenure
	l.InterestRate = credit.Round2(row.InterestRate)
	l.MonthlyRepayment = emi
	l.EMIsPaidOnTime = row.EMIsPaidOnTime
	l.Approved = true // historical loans were all granted
	l.StartDate = start
	l.EndDate = end

	if created {
		return true, repo.Create(ctx, l)
	}
	return false, repo.Save(ctx, l)
}

func recomputeDebts(ctx context.Context, r uow.Repos) error {
	ids, err := r.Customers.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	for _, cid := range ids {
		debt, err := r.Loans.SumApprovedAmount(ctx, cid)
		if err != nil {
			return fmt.Errorf("sum loans of customer %d: %w", cid, err)
		}
		if err := r.Customers.UpdateCurrentDebt(ctx, cid, debt); err != nil {
			return fmt.Errorf("update debt of customer %d: %w", cid, err)
		}
	}
	return nil
}

func validateCustomer(row CustomerRow) error {
	switch {
	case row.FirstName == "" || row.LastName == "":
		return ErrName
	case row.PhoneNumber < 1_000_000_000 || row.PhoneNumber > 9_999_999_999:
		return ErrPhoneFormat
	case row.MonthlySalary <= 0:
		return ErrIncome
	case row.Age != 0 && (row.Age < 18 || row.Age > 100):
		return ErrAge
	}
	return nil
}

func validateLoan(row LoanRow) error {
	switch {
	case row.LegacyLoanID == "":
		return ErrMissingLoanID
	case row.LoanAmount <= 0:
		return ErrLoanAmount
	case row.Tenure < 1 || row.Tenure > 120:
		return ErrTenure
	case row.EMIsPaidOnTime < 0 || row.EMIsPaidOnTime > row.Tenure:
		return ErrPaidCount
	case row.StartDate.IsZero():
		return ErrMissingStartDate
	}
	return nil
}

func skip(path string) bool {
	if _, err := os.Stat(path); err != nil {
		logrus.WithField("file", path).Warn("data file not found, skipping")
		return true
	}
	return false
}

func logRowErrors(path string, errs []RowError) {
	for i := range errs {
		logrus.WithField("file", path).WithError(&errs[i]).Warn("row skipped")
	}
}

func logResult(res Result) {
	logrus.WithFields(logrus.Fields{
		"file":    res.File,
		"total":   res.Total,
		"created": res.Created,
		"updated": res.Updated,
		"errors":  res.Errors,
	}).Info("data file loaded")
}
