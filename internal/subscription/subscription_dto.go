package subscription

import "time"

type SubscriptionStatusResponse struct {
	EmployeeID string     `json:"employee_id"`
	Active     bool       `json:"active"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}
