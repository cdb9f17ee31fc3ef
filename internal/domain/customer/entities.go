package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("customer not found")
	ErrDuplicatePhone = errors.New("customer with this phone number already exists")

	// A sheet customer collided on phone number or external id.
	ErrDuplicateCustomer = errors.New("customer with this phone number or external id already exists")
)

// Table: customers
type Customer struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ExternalID    *int64    `gorm:"column:external_id;uniqueIndex:ux_customers_external_id"`
	FirstName     string    `gorm:"column:first_name;size:100;not null"`
	LastName      string    `gorm:"column:last_name;size:100;not null"`
	Age           int       `gorm:"column:age;not null"`
	PhoneNumber   int64     `gorm:"column:phone_number;not null;uniqueIndex:ux_customers_phone_number"`
	MonthlyIncome float64   `gorm:"column:monthly_income;type:decimal(12,2);not null"`
	ApprovedLimit float64   `gorm:"column:approved_limit;type:decimal(15,2);not null"`
	CurrentDebt   float64   `gorm:"column:current_debt;type:decimal(15,2);not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) FullName() string { return c.FirstName + " " + c.LastName }
