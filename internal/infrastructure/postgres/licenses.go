package postgres

import (
	"context"
	"fmt"

	"github.com/flexibill/internal/domain"
	"github.com/flexibill/internal/pkg/id"
	"gorm.io/gorm"
)

// LicenseRepo provides typed gorm operations for the license table.
type LicenseRepo struct {
	db *gorm.DB
}

func NewLicenseRepo(db *gorm.DB) *LicenseRepo {
	return &LicenseRepo{db: db}
}

// Create inserts l, assigning a fresh license key when none is set.
func (r *LicenseRepo) Create(ctx context.Context, l *domain.License) error {
	if l.Key == "" {
		l.Key = id.NewLicenseKey()
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LicenseRepo) GetByKey(ctx context.Context, key string) (*domain.License, error) {
	var l domain.License
	if err := r.db.WithContext(ctx).First(&l, "key = ?", key).Error; err != nil {
		return nil, notFound("license", err)
	}
	return &l, nil
}

// ListByUser returns the user's licenses, most recently created first.
func (r *LicenseRepo) ListByUser(ctx context.Context, userID uint) ([]domain.License, error) {
	var out []domain.License
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_time DESC, id DESC").
		Find(&out).Error
	return out, err
}

// Deactivate clears is_active and records who did it.
func (r *LicenseRepo) Deactivate(ctx context.Context, key, by string) error {
	res := r.db.WithContext(ctx).Model(&domain.License{}).
		Where("key = ?", key).
		Updates(map[string]any{"is_active": false, "last_updated_by": by})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("license %s: %w", key, domain.ErrNotFound)
	}
	return nil
}

