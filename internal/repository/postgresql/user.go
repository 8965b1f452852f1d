package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/user"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	query := `
		SELECT id, email, display_name, is_admin, is_owner, is_super_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.IsAdmin, &u.IsOwner, &u.IsSuperAdmin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
