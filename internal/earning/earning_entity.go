package earning

import (
	"time"

	"zestpay/internal/shared/money"

	"github.com/google/uuid"
)

// Earning adalah satu setoran penghasilan harian gig worker. Satu hari
// bisa punya banyak baris (beda platform); agregasi per hari terjadi di query.
type Earning struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID   `gorm:"type:uuid;not null;index:idx_earnings_employee_date"`
	Amount     money.Paise `gorm:"type:bigint;not null"`
	Source     string      `gorm:"type:varchar(50);not null"` // "ola", "uber", "zomato", ...
	EarnedAt   time.Time   `gorm:"not null;index:idx_earnings_employee_date"`
	CreatedAt  time.Time
}

func (Earning) TableName() string {
	return "earnings"
}

// rollingWindowDays membatasi rata-rata mingguan ke 6 minggu terakhir.
const rollingWindowDays = 42

// StatusCompleted: instant withdrawal tidak lewat tahap approval,
// langsung final saat dibuat.
const StatusCompleted = "COMPLETED"

// InstantWithdrawal adalah penarikan gig worker yang langsung final; tidak
// ada tahap approval seperti penarikan bulanan karyawan tetap.
type InstantWithdrawal struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Reference  string      `gorm:"type:varchar(20);uniqueIndex;not null"`
	Amount     money.Paise `gorm:"not null"`
	Status     string      `gorm:"type:varchar(20);not null;default:'COMPLETED'"`

	// Snapshot limit harian saat penarikan; buffer adalah sisa limit yang
	// ditahan untuk potongan platform.
	DailyLimitSnapshot   money.Paise `gorm:"not null"`
	SafetyBufferReserved money.Paise `gorm:"not null"`
	GigScoreSnapshot     float64     `gorm:"type:numeric(4,2);not null"`

	ProcessedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

func (InstantWithdrawal) TableName() string {
	return "instant_withdrawals"
}
