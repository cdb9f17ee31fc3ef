package creditscore

import "time"

type Components struct {
	PastLoansScore         float64 `json:"past_loans_score"`
	LoanVolumeScore        float64 `json:"loan_volume_score"`
	CurrentYearScore       float64 `json:"current_year_score"`
	CreditUtilizationScore float64 `json:"credit_utilization_score"`
}

type CreditScoreDTO struct {
	CustomerID   uint64     `json:"customer_id"`
	CreditScore  int        `json:"credit_score"`
	ScoreGrade   string     `json:"score_grade"`
	Components   Components `json:"components"`
	CalculatedAt time.Time  `json:"calculated_at"`
}

// RecalcResult summarizes a RecalculateAll run.
type RecalcResult struct {
	Total   int
	Updated int
	Failed  int
}
