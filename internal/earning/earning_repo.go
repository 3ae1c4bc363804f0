package earning

import (
	"context"
	"time"

	"zestpay/internal/employee"
	"zestpay/internal/shared/money"
	"zestpay/internal/trust"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=earning_repo.go -destination=mock/earning_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Earning) error
	FindAllByEmployee(ctx context.Context, companyID, employeeID string, since time.Time) ([]Earning, error)

	// SumSince mengembalikan total penghasilan dan jumlah hari kerja
	// (distinct tanggal) sejak cutoff.
	SumSince(ctx context.Context, companyID, employeeID string, since time.Time) (money.Paise, int, error)

	// SumBetween menjumlahkan penghasilan pada rentang [from, to).
	SumBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) (money.Paise, error)

	FindEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)

	// LockEmployee membaca baris karyawan dengan FOR UPDATE untuk cek
	// limit harian instant withdrawal.
	LockEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)

	UpdateGigScore(ctx context.Context, employeeID string, score trust.GigScore) error

	CreateInstantWithdrawal(ctx context.Context, iw *InstantWithdrawal) error
	FindInstantWithdrawals(ctx context.Context, companyID, employeeID string) ([]InstantWithdrawal, error)
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

func (r *repository) Create(ctx context.Context, e *Earning) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string, since time.Time) ([]Earning, error) {
	var list []Earning
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND earned_at >= ?", companyID, employeeID, since).
		Order("earned_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) SumSince(ctx context.Context, companyID, employeeID string, since time.Time) (money.Paise, int, error) {
	var row struct {
		Total int64
		Days  int
	}
	err := r.db.WithContext(ctx).
		Model(&Earning{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(DISTINCT DATE(earned_at)) AS days").
		Where("company_id = ? AND employee_id = ? AND earned_at >= ?", companyID, employeeID, since).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return money.Paise(row.Total), row.Days, nil
}

func (r *repository) SumBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) (money.Paise, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Earning{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("company_id = ? AND employee_id = ? AND earned_at >= ? AND earned_at < ?",
			companyID, employeeID, from, to).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return money.Paise(total), nil
}

func (r *repository) FindEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	var empl employee.Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, employeeID).
		First(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) LockEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	var empl employee.Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND id = ?", companyID, employeeID).
		First(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) UpdateGigScore(ctx context.Context, employeeID string, score trust.GigScore) error {
	return r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		UpdateColumn("gig_trust_score", float64(score)).Error
}

func (r *repository) CreateInstantWithdrawal(ctx context.Context, iw *InstantWithdrawal) error {
	return r.db.WithContext(ctx).Create(iw).Error
}

func (r *repository) FindInstantWithdrawals(ctx context.Context, companyID, employeeID string) ([]InstantWithdrawal, error) {
	var list []InstantWithdrawal
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("processed_at DESC").
		Find(&list).Error
	return list, err
}
