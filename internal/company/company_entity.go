package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(150);not null"`
	// Domain is the registered email domain, stored lowercase. It is the
	// trust boundary for employee self-registration.
	Domain string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email  string `gorm:"type:varchar(255);index"`

	// Aggregates, mutated only via atomic SQL increments.
	TotalEmployees int64 `gorm:"not null;default:0"`
	TotalDisbursed int64 `gorm:"type:bigint;not null;default:0"` // paise

	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
