package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/citizen-portal/internal/models"
)

// ServiceRepository persists the public service catalog.
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository creates a new instance of ServiceRepository.
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Category    string `db:"category"`
	Extra       []byte `db:"extra"`
}

func (r serviceRow) toModel() (models.Service, error) {
	svc := models.Service{ID: r.ID, Name: r.Name, Description: r.Description, Category: r.Category}
	if len(r.Extra) == 0 {
		return svc, nil
	}
	dec := json.NewDecoder(bytes.NewReader(r.Extra))
	dec.UseNumber()
	if err := dec.Decode(&svc.Extra); err != nil {
		return svc, fmt.Errorf("decode extra fields of service %s: %w", r.ID, err)
	}
	return svc, nil
}

// List returns every service in store order.
func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	const query = `SELECT id, name, description, category, extra FROM services`
	var rows []serviceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	services := make([]models.Service, 0, len(rows))
	for _, row := range rows {
		svc, err := row.toModel()
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, nil
}

// FindByID returns the service with the given business id, or nil when none exists.
func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	const query = `SELECT id, name, description, category, extra FROM services WHERE id = $1 LIMIT 1`
	var row serviceRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find service by id: %w", err)
	}
	svc, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// Upsert replaces the whole service keyed by id, inserting it when absent.
func (r *ServiceRepository) Upsert(ctx context.Context, svc models.Service) error {
	extra := svc.Extra
	if extra == nil {
		extra = map[string]interface{}{}
	}
	payload, err := json.Marshal(extra)
	if err != nil {
		return fmt.Errorf("encode extra fields: %w", err)
	}

	const query = `INSERT INTO services (id, name, description, category, extra, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, category = EXCLUDED.category, extra = EXCLUDED.extra, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, svc.ID, svc.Name, svc.Description, svc.Category, payload, now); err != nil {
		return fmt.Errorf("upsert service: %w", err)
	}
	return nil
}

// Delete removes the service with the given id. Missing rows are not an error.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM services WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}
