package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/flexibill/internal/domain"
	"gorm.io/gorm"
)

// UserRepo provides typed gorm operations for the user table.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) Get(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &u, nil
}

func (r *UserRepo) GetByMobileNumber(ctx context.Context, mobileNumber string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "mobile_number = ?", mobileNumber).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &u, nil
}

// Delete removes the user. The license foreign key restricts deletion
// while the user still owns licenses.
func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func notFound(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s not found: %w", entity, domain.ErrNotFound)
	}
	return err
}
