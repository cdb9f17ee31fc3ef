package creditscore

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("credit score not found")

// Table: credit_scores (one row per customer, overwritten on every recalculation)
type CreditScore struct {
	ID                     uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID             uint64    `gorm:"column:customer_id;not null;uniqueIndex:ux_credit_scores_customer_id"`
	Score                  int       `gorm:"column:score;not null"`
	PastLoansScore         float64   `gorm:"column:past_loans_score;type:decimal(5,2);not null"`
	LoanVolumeScore        float64   `gorm:"column:loan_volume_score;type:decimal(5,2);not null"`
	CurrentYearScore       float64   `gorm:"column:current_year_score;type:decimal(5,2);not null"`
	CreditUtilizationScore float64   `gorm:"column:credit_utilization_score;type:decimal(5,2);not null"`
	CalculatedAt           time.Time `gorm:"column:calculated_at;not null"`
}

func (CreditScore) TableName() string { return "credit_scores" }

// Grade maps a score onto the same bands the eligibility rules use.
func Grade(score int) string {
	switch {
	case score > 50:
		return "Excellent"
	case score > 30:
		return "Good"
	case score > 10:
		return "Fair"
	default:
		return "Poor"
	}
}
