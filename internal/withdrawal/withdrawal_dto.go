package withdrawal

import "time"

type RequestWithdrawalRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"` // paise
	Reason string `json:"reason" binding:"omitempty,max=255"`
}

type RejectWithdrawalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RecordRepaymentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Amount     int64  `json:"amount" binding:"required,gt=0"` // paise
	OnTime     bool   `json:"on_time"`
}

type WithdrawalResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	Reference       string     `json:"reference"`
	Amount          int64      `json:"amount"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	MonthlySalary   int64      `json:"monthly_salary_snapshot"`
	TrustScore      int        `json:"trust_score_snapshot"`
	MaxAllowed      int64      `json:"max_allowed_snapshot"`
	RequestedAt     time.Time  `json:"requested_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

type AvailabilityResponse struct {
	EmployeeID     string `json:"employee_id"`
	MonthlySalary  int64  `json:"monthly_salary"`
	TrustScore     int    `json:"trust_score"`
	Ceiling        int64  `json:"ceiling"`
	TotalWithdrawn int64  `json:"total_withdrawn"`
	Available      int64  `json:"available"`
}

type RepaymentResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	Amount        int64     `json:"amount"`
	OnTime        bool      `json:"on_time"`
	NewTrustScore int       `json:"new_trust_score"`
	RecordedAt    time.Time `json:"recorded_at"`
}

type WithdrawalQueryFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}
