package employee

type CreateEmployeeRequest struct {
	FullName          string `json:"full_name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	CompensationModel string `json:"compensation_model" binding:"required,oneof=SALARIED GIG"`
	MonthlySalary     int64  `json:"monthly_salary" binding:"min=0"` // paise
}

type InviteEmployeeRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	MonthlySalary int64  `json:"monthly_salary" binding:"min=0"`
}

type UpdateEmployeeRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	MonthlySalary int64  `json:"monthly_salary" binding:"min=0"`
}

type EmployeeResponse struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	FullName          string  `json:"full_name"`
	Email             string  `json:"email"`
	Status            string  `json:"status"`
	CompensationModel string  `json:"compensation_model"`
	MonthlySalary     int64   `json:"monthly_salary"`
	TrustScore        int     `json:"trust_score"`
	GigTrustScore     float64 `json:"gig_trust_score"`
	TotalWithdrawn    int64   `json:"total_withdrawn"`
	TotalRepaid       int64   `json:"total_repaid"`
	OnTimeRepayments  int     `json:"on_time_repayments"`
	LateRepayments    int     `json:"late_repayments"`
	HasSubscription   bool    `json:"has_subscription"`
}
