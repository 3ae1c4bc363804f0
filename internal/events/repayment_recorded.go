package events

import "time"

const RepaymentRecordedTopic = "ewa.repayment.recorded.v1"

type RepaymentRecordedEvent struct {
	EventType     string    `json:"event_type"`
	EmployeeID    string    `json:"employee_id"`
	CompanyID     string    `json:"company_id"`
	AmountPaise   int64     `json:"amount_paise"`
	OnTime        bool      `json:"on_time"`
	NewTrustScore int       `json:"new_trust_score"`
	OccurredAt    time.Time `json:"occurred_at"`
}
