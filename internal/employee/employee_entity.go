package employee

import (
	"time"

	"zestpay/internal/trust"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// Lifecycle: invited by an admin, active after completing registration.
	StatusInvited = "INVITED"
	StatusActive  = "ACTIVE"

	// Compensation model selects the eligibility formula and score scale.
	ModelSalaried = "SALARIED"
	ModelGig      = "GIG"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Status    string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CompensationModel string `gorm:"type:varchar(20);not null;default:'SALARIED'"`
	MonthlySalary     int64  `gorm:"type:bigint;not null;default:0"` // paise

	TrustScore    trust.SalariedScore `gorm:"type:int;not null;default:50"`
	GigTrustScore trust.GigScore      `gorm:"type:numeric(4,2);not null;default:0.50"`

	// Running totals in paise. TotalWithdrawn is decremented by repayments
	// (floored at zero); TotalRepaid only ever grows.
	TotalWithdrawn   int64 `gorm:"type:bigint;not null;default:0"`
	TotalRepaid      int64 `gorm:"type:bigint;not null;default:0"`
	OnTimeRepayments int   `gorm:"not null;default:0"`
	LateRepayments   int   `gorm:"not null;default:0"`

	HasSubscription       bool `gorm:"not null;default:false"`
	SubscriptionPaidAt    *time.Time
	SubscriptionExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
