package disbursement

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=disbursement_repo.go -destination=mock/disbursement_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, d *Disbursement) error
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Disbursement, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Disbursement) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Disbursement, error) {
	var list []Disbursement
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("processed_at DESC").
		Find(&list).Error
	return list, err
}
