package withdrawal

import (
	"context"

	"zestpay/internal/employee"
	"zestpay/internal/shared/money"
	"zestpay/internal/trust"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=withdrawal_repo.go -destination=mock/withdrawal_repo_mock.go -package=mock
type Repository interface {
	// WithTx mengembalikan repository yang semua query-nya jalan di atas
	// transaksi tx, bukan pool.
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, w *Withdrawal) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Withdrawal, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Withdrawal, error)
	FindAllByCompany(ctx context.Context, companyID string, filter WithdrawalQueryFilter) ([]Withdrawal, error)
	Update(ctx context.Context, w *Withdrawal) error

	// FindEmployee membaca baris karyawan tanpa lock, untuk path read-only.
	FindEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)

	// LockEmployee membaca baris karyawan dengan FOR UPDATE supaya cek limit
	// dan insert withdrawal terlindung dari request paralel.
	LockEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error)

	// IncrementWithdrawn menambah running total penarikan secara atomik.
	IncrementWithdrawn(ctx context.Context, employeeID string, amount money.Paise) error

	// ApplyRepayment menurunkan totalWithdrawn (floor 0), menaikkan
	// totalRepaid dan counter tepat/terlambat, dan menyimpan skor baru
	// dalam satu UPDATE.
	ApplyRepayment(ctx context.Context, employeeID string, amount money.Paise, onTime bool, newScore trust.SalariedScore) error

	CreateRepayment(ctx context.Context, rp *Repayment) error
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

func (r *repository) Create(ctx context.Context, w *Withdrawal) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Withdrawal, error) {
	var w Withdrawal
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Withdrawal, error) {
	var list []Withdrawal
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("requested_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter WithdrawalQueryFilter) ([]Withdrawal, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("requested_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("requested_at <= ?", *filter.To)
	}

	var list []Withdrawal
	err := q.Order("requested_at DESC").Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, w *Withdrawal) error {
	return r.db.WithContext(ctx).Save(w).Error
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

func (r *repository) IncrementWithdrawn(ctx context.Context, employeeID string, amount money.Paise) error {
	return r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		UpdateColumn("total_withdrawn", gorm.Expr("total_withdrawn + ?", int64(amount))).Error
}

func (r *repository) ApplyRepayment(ctx context.Context, employeeID string, amount money.Paise, onTime bool, newScore trust.SalariedScore) error {
	counterCol := "on_time_repayments"
	if !onTime {
		counterCol = "late_repayments"
	}

	return r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Updates(map[string]interface{}{
			"total_withdrawn": gorm.Expr("GREATEST(total_withdrawn - ?, 0)", int64(amount)),
			"total_repaid":    gorm.Expr("total_repaid + ?", int64(amount)),
			counterCol:        gorm.Expr(counterCol + " + 1"),
			"trust_score":     int(newScore),
		}).Error
}

func (r *repository) CreateRepayment(ctx context.Context, rp *Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}
