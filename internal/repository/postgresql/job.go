package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/job"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/database"
)

type jobRepository struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.Repository {
	return &jobRepository{db: db}
}

func (r *jobRepository) ListCompletedInRange(ctx context.Context, start, end time.Time) ([]job.Job, error) {
	query := `
		SELECT id, location_id, service_date, status,
			   COALESCE(assigned_employees, '{}'),
			   COALESCE(duration_hours, 0), COALESCE(units, 0), created_at
		FROM service_history
		WHERE status = 'completed' AND service_date >= $1 AND service_date < $2
		ORDER BY service_date
	`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed jobs: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(
			&j.ID, &j.LocationID, &j.ServiceDate, &j.Status,
			&j.AssignedEmployees,
			&j.DurationHours, &j.Units, &j.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}

	return jobs, nil
}
