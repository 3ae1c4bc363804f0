package counter

import (
	"context"

	"gorm.io/gorm"
)

// Repository membagikan nomor urut per perusahaan untuk nomor referensi
// yang dilihat user: WD-000042 untuk withdrawal, IW-000007 untuk instant
// withdrawal gig. Tiap pasangan (company, sequence) punya counter sendiri.
type Repository interface {
	Next(ctx context.Context, companyID string, sequence string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Next(ctx context.Context, companyID string, sequence string) (int64, error) {
	var next int64

	// UPSERT + increment satu statement; dua request paralel tidak pernah
	// dapat nomor yang sama.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, sequence).Scan(&next).Error

	if err != nil {
		return 0, err
	}

	return next, nil
}
