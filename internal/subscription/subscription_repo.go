package subscription

import (
	"context"
	"time"

	"zestpay/internal/employee"

	"gorm.io/gorm"
)

// Repository membaca dan menulis kolom subscription di tabel employees;
// langganan bukan tabel terpisah karena satu karyawan maksimal satu langganan.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByIDAndCompany(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)
	SetSubscription(ctx context.Context, employeeID string, active bool, paidAt, expiresAt *time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	var empl employee.Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, employeeID).
		First(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) SetSubscription(ctx context.Context, employeeID string, active bool, paidAt, expiresAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Updates(map[string]interface{}{
			"has_subscription":        active,
			"subscription_paid_at":    paidAt,
			"subscription_expires_at": expiresAt,
		}).Error
}
