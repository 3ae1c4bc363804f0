package earning

import "time"

type RecordEarningRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"` // paise
	Source string `json:"source" binding:"required"`
}

type EarningResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Amount     int64     `json:"amount"`
	Source     string    `json:"source"`
	EarnedAt   time.Time `json:"earned_at"`
}

type RollingAverageResponse struct {
	EmployeeID    string `json:"employee_id"`
	WeeklyAverage int64  `json:"weekly_average"`
	TotalEarnings int64  `json:"total_earnings"`
	DaysWorked    int    `json:"days_worked"`
}

type WithdrawalLimitResponse struct {
	EmployeeID    string  `json:"employee_id"`
	DailyLimit    int64   `json:"daily_limit"`
	WeeklyAverage int64   `json:"weekly_average"`
	TodayEarnings int64   `json:"today_earnings"`
	TrustScore    float64 `json:"trust_score"`
	// SafetyBuffer adalah bagian penghasilan hari ini yang ditahan untuk
	// potongan platform.
	SafetyBuffer int64 `json:"safety_buffer"`
}

type InstantWithdrawalRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"` // paise
}

type InstantWithdrawalResponse struct {
	ID            string    `json:"id"`
	Reference     string    `json:"reference"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	NewTrustScore float64   `json:"new_trust_score"`
	ProcessedAt   time.Time `json:"processed_at"`
}
