package company

type OnboardCompanyRequest struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain" binding:"required,fqdn"`
	Email  string `json:"email" binding:"required,email"`
}

type CompanyResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Domain         string `json:"domain"`
	Email          string `json:"email"`
	TotalEmployees int64  `json:"total_employees"`
	TotalDisbursed int64  `json:"total_disbursed"`
	IsActive       bool   `json:"is_active"`
}
