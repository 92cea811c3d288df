package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/citizen-portal/internal/models"
)

// AdminRepository provides database access for admin credentials.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByUsername returns the admin with the given username. It returns
// sql.ErrNoRows unwrapped when none exists.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	const query = `SELECT username, password FROM admins WHERE username = $1 LIMIT 1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find admin by username: %w", err)
	}
	return &admin, nil
}

// Count returns the number of stored admins.
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM admins`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return total, nil
}

// Create inserts an admin, leaving an existing one with the same username untouched.
func (r *AdminRepository) Create(ctx context.Context, admin models.Admin) error {
	const query = `INSERT INTO admins (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, admin.Username, admin.Password); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
