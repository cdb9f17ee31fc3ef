package loan

// LoanRequest is the body of both /check-eligibility and /create-loan.
type LoanRequest struct {
	CustomerID   uint64
	LoanAmount   float64
	InterestRate float64
	Tenure       int
}

type EligibilityDTO struct {
	CustomerID            uint64  `json:"customer_id"`
	Approval              bool    `json:"approval"`
	InterestRate          float64 `json:"interest_rate"`
	CorrectedInterestRate float64 `json:"corrected_interest_rate"`
	Tenure                int     `json:"tenure"`
	MonthlyInstallment    float64 `json:"monthly_installment"`
	Message               string  `json:"message,omitempty"`
}

type CreatedLoanDTO struct {
	LoanID             string  `json:"loan_id"`
	CustomerID         uint64  `json:"customer_id"`
	LoanApproved       bool    `json:"loan_approved"`
	Message            string  `json:"message"`
	MonthlyInstallment float64 `json:"monthly_installment"`
}

type LoanCustomerDTO struct {
	ID          uint64 `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber int64  `json:"phone_number"`
	Age         int    `json:"age"`
}

type LoanDetailDTO struct {
	LoanID             string          `json:"loan_id"`
	Customer           LoanCustomerDTO `json:"customer"`
	LoanAmount         float64         `json:"loan_amount"`
	InterestRate       float64         `json:"interest_rate"`
	Tenure             int             `json:"tenure"`
	MonthlyInstallment float64         `json:"monthly_installment"`
}

type CustomerLoanDTO struct {
	LoanID             string  `json:"loan_id"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	RepaymentsLeft     int     `json:"repayments_left"`
	MonthlyInstallment float64 `json:"monthly_installment"`
}
