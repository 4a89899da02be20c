// internal/repository/postgres/user_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/suqpos/backend-go/internal/domain"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// OwnerIDs returns the ids of all owner-role users, the fan-out targets
// for stock and sale notifications.
func (r *UserRepository) OwnerIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE role = $1 ORDER BY id`, domain.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("list owner ids: %w", err)
	}
	return ids, nil
}
