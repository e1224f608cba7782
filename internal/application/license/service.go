package license

import (
	"context"
	"fmt"

	"github.com/flexibill/internal/domain"
)

// Service resolves the caller's user record and licenses from the mobile
// number carried in their access token.
type Service interface {
	Profile(ctx context.Context, mobileNumber string) (*domain.User, error)
	ListForMobile(ctx context.Context, mobileNumber string) ([]domain.License, error)
}

type userStore interface {
	GetByMobileNumber(ctx context.Context, mobileNumber string) (*domain.User, error)
}

type licenseStore interface {
	ListByUser(ctx context.Context, userID uint) ([]domain.License, error)
}

type service struct {
	users    userStore
	licenses licenseStore
}

type ServiceDeps struct {
	Users    userStore
	Licenses licenseStore
}

func NewService(deps ServiceDeps) Service {
	return &service{users: deps.Users, licenses: deps.Licenses}
}

func (s *service) Profile(ctx context.Context, mobileNumber string) (*domain.User, error) {
	if mobileNumber == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.users.GetByMobileNumber(ctx, mobileNumber)
}

func (s *service) ListForMobile(ctx context.Context, mobileNumber string) ([]domain.License, error) {
	u, err := s.Profile(ctx, mobileNumber)
	if err != nil {
		return nil, err
	}
	out, err := s.licenses.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list licenses for user %d: %w", u.ID, err)
	}
	if out == nil {
		out = []domain.License{}
	}
	return out, nil
}
