package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, comp *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetByDomain(ctx context.Context, domain string) (*Company, error)
	Update(ctx context.Context, comp *Company) error
	// IncrementEmployees adjusts the roster counter atomically; delta may
	// be negative on employee removal.
	IncrementEmployees(ctx context.Context, id uuid.UUID, delta int64) error
	// IncrementDisbursed bumps the lifetime payout aggregate (paise).
	IncrementDisbursed(ctx context.Context, id uuid.UUID, amount int64) error
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

func (r *repository) Create(ctx context.Context, comp *Company) error {
	return r.db.WithContext(ctx).Create(comp).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var comp Company
	err := r.db.WithContext(ctx).First(&comp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *repository) GetByDomain(ctx context.Context, domain string) (*Company, error) {
	var comp Company
	err := r.db.WithContext(ctx).First(&comp, "domain = ?", domain).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *repository) Update(ctx context.Context, comp *Company) error {
	return r.db.WithContext(ctx).Save(comp).Error
}

func (r *repository) IncrementEmployees(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ?", id).
		UpdateColumn("total_employees", gorm.Expr("total_employees + ?", delta)).Error
}

func (r *repository) IncrementDisbursed(ctx context.Context, id uuid.UUID, amount int64) error {
	return r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ?", id).
		UpdateColumn("total_disbursed", gorm.Expr("total_disbursed + ?", amount)).Error
}
