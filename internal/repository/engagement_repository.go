package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/citizen-portal/internal/models"
)

// EngagementRepository stores citizen engagement records. Records are
// append-only.
type EngagementRepository struct {
	db *sqlx.DB
}

// NewEngagementRepository constructs an engagement repository.
func NewEngagementRepository(db *sqlx.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

type engagementRow struct {
	ID              string         `db:"id"`
	UserID          *string        `db:"user_id"`
	Age             *int           `db:"age"`
	Job             *string        `db:"job"`
	Desires         pq.StringArray `db:"desires"`
	QuestionClicked *string        `db:"question_clicked"`
	Service         *string        `db:"service"`
	Timestamp       time.Time      `db:"timestamp"`
}

func (r engagementRow) toModel() models.Engagement {
	desires := []string(r.Desires)
	if desires == nil {
		desires = []string{}
	}
	return models.Engagement{
		ID:              r.ID,
		UserID:          r.UserID,
		Age:             r.Age,
		Job:             r.Job,
		Desires:         desires,
		QuestionClicked: r.QuestionClicked,
		Service:         r.Service,
		Timestamp:       r.Timestamp.UTC(),
	}
}

const engagementColumns = `id, user_id, age, job, desires, question_clicked, service, "timestamp"`

// Insert stores a new engagement, assigning an id when missing.
func (r *EngagementRepository) Insert(ctx context.Context, e *models.Engagement) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	desires := e.Desires
	if desires == nil {
		desires = []string{}
	}

	const query = `INSERT INTO engagements (` + engagementColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.UserID, e.Age, e.Job, pq.Array(desires), e.QuestionClicked, e.Service, e.Timestamp); err != nil {
		return fmt.Errorf("insert engagement: %w", err)
	}
	return nil
}

// All returns every engagement, oldest first.
func (r *EngagementRepository) All(ctx context.Context) ([]models.Engagement, error) {
	const query = `SELECT ` + engagementColumns + ` FROM engagements ORDER BY "timestamp" ASC, id ASC`
	return r.selectEngagements(ctx, "list engagements", query)
}

// Recent returns the newest engagements, newest first.
func (r *EngagementRepository) Recent(ctx context.Context, limit int) ([]models.Engagement, error) {
	if limit <= 0 {
		limit = 500
	}
	const query = `SELECT ` + engagementColumns + ` FROM engagements ORDER BY "timestamp" DESC, id DESC LIMIT $1`
	return r.selectEngagements(ctx, "list recent engagements", query, limit)
}

func (r *EngagementRepository) selectEngagements(ctx context.Context, op, query string, args ...interface{}) ([]models.Engagement, error) {
	var rows []engagementRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	engagements := make([]models.Engagement, 0, len(rows))
	for _, row := range rows {
		engagements = append(engagements, row.toModel())
	}
	return engagements, nil
}
