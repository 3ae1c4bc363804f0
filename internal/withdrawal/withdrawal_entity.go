package withdrawal

import (
	"time"

	"zestpay/internal/shared/money"
	"zestpay/internal/trust"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Withdrawal adalah catatan pengajuan tarik gaji. Kolom snapshot merekam
// kondisi saat request dibuat supaya audit tidak berubah walau gaji atau
// trust score karyawan berubah belakangan.
type Withdrawal struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Reference  string      `gorm:"type:varchar(20);uniqueIndex;not null"`
	Amount     money.Paise `gorm:"not null"`
	Reason     string      `gorm:"type:varchar(255)"`
	Status     string      `gorm:"type:varchar(20);not null;default:'PENDING';index"`

	// Snapshot saat request
	MonthlySalarySnapshot money.Paise         `gorm:"not null"`
	TrustScoreSnapshot    trust.SalariedScore `gorm:"not null"`
	MaxAllowedSnapshot    money.Paise         `gorm:"not null"`

	RequestedAt     time.Time `gorm:"not null"`
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	RejectionReason string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

// Repayment adalah baris audit append-only; saldo karyawan diubah lewat
// increment atomik, bukan lewat baris ini.
type Repayment struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Amount     money.Paise `gorm:"not null"`
	OnTime     bool        `gorm:"not null"`
	RecordedAt time.Time   `gorm:"not null"`
	CreatedAt  time.Time
}

func (Repayment) TableName() string {
	return "repayments"
}
