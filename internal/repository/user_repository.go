package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type UserRepository interface {
	// Returns ErrConflict when the email is already registered.
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Update(ctx context.Context, u *model.User) error
}
