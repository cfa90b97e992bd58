package contract

import (
	"context"

	"fiberise-be/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	// FindByPhone returns (nil, nil) when no record exists.
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
}
