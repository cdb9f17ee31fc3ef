package customer

type RegisterInput struct {
	FirstName     string
	LastName      string
	Age           int
	MonthlyIncome float64
	PhoneNumber   int64
}

type CustomerDTO struct {
	CustomerID    uint64  `json:"customer_id"`
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	MonthlyIncome float64 `json:"monthly_income"`
	ApprovedLimit float64 `json:"approved_limit"`
	PhoneNumber   int64   `json:"phone_number"`
}
