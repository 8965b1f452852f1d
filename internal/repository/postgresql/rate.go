package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clevelandclean/payroll-backend-go/internal/domain/rate"
	"github.com/clevelandclean/payroll-backend-go/internal/pkg/database"
)

type rateRepository struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) rate.Repository {
	return &rateRepository{db: db}
}

func (r *rateRepository) ListForEmployeeUpTo(ctx context.Context, employeeID string, asOf time.Time) ([]rate.Record, error) {
	// rate_type is NULL on legacy rows; COALESCE keeps the empty string as
	// the "no explicit type" marker the resolver normalizes.
	query := `
		SELECT id, employee_id, effective_date,
			   COALESCE(rate_type, ''),
			   COALESCE(hourly_rate, 0), COALESCE(per_visit_rate, 0), COALESCE(monthly_rate, 0),
			   monthly_pay_day, created_at
		FROM employee_rates
		WHERE employee_id = $1 AND effective_date <= $2
		ORDER BY effective_date ASC
	`

	rows, err := r.db.Query(ctx, query, employeeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee rates: %w", err)
	}
	defer rows.Close()

	var records []rate.Record
	for rows.Next() {
		var rec rate.Record
		var rateType string
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.EffectiveDate,
			&rateType,
			&rec.HourlyRate, &rec.PerVisitRate, &rec.MonthlyRate,
			&rec.MonthlyPayDay, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rate record: %w", err)
		}
		rec.Type = rate.Type(rateType)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rate records: %w", err)
	}

	return records, nil
}
