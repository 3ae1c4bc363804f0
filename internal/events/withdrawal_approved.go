package events

import "time"

const WithdrawalApprovedTopic = "ewa.withdrawal.approved.v1"

type WithdrawalApprovedEvent struct {
	EventType    string    `json:"event_type"`
	WithdrawalID string    `json:"withdrawal_id"`
	EmployeeID   string    `json:"employee_id"`
	CompanyID    string    `json:"company_id"`
	AmountPaise  int64     `json:"amount_paise"`
	Reference    string    `json:"reference"`
	OccurredAt   time.Time `json:"occurred_at"`
}
