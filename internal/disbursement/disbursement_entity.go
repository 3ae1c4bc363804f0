package disbursement

import (
	"time"

	"zestpay/internal/shared/money"

	"github.com/google/uuid"
)

const StatusProcessed = "PROCESSED"

// Disbursement adalah pencairan dana hasil withdrawal yang disetujui.
// WithdrawalID unik: satu withdrawal hanya boleh dicairkan sekali walau
// event-nya terkirim ulang.
type Disbursement struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	WithdrawalID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uq_disbursements_withdrawal"`
	Reference    string      `gorm:"type:varchar(20);not null"`
	Amount       money.Paise `gorm:"not null"`
	Status       string      `gorm:"type:varchar(20);not null;default:'PROCESSED'"`
	ProcessedAt  time.Time   `gorm:"not null"`
	CreatedAt    time.Time
}

func (Disbursement) TableName() string {
	return "disbursements"
}
