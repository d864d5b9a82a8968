package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
)

func (r *vaccineRepository) List(ctx context.Context, filter model.VaccineFilter) ([]*model.Vaccine, error) {
	query := `SELECT * FROM vaccines`
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, strings.ToLower(filter.Search))
		conditions = append(conditions, fmt.Sprintf("LOWER(vaccine_name) LIKE '%%' || $%d || '%%'", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY vaccine_name"

	var vaccines []*model.Vaccine
	if err := r.db.SelectContext(ctx, &vaccines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list vaccines: %w", err)
	}
	return vaccines, nil
}

func (r *vaccineRepository) ListWithInfo(ctx context.Context) ([]*model.VaccineInfo, error) {
	query := `
		SELECT v.*, vi.how_it_works, vi.side_effects, vi.precautions, vi.effectiveness
		FROM vaccines v
		LEFT JOIN vaccine_information vi ON v.vaccine_id = vi.vaccine_id
		ORDER BY v.vaccine_name
	`

	var infos []*model.VaccineInfo
	if err := r.db.SelectContext(ctx, &infos, query); err != nil {
		return nil, fmt.Errorf("failed to list vaccine information: %w", err)
	}
	return infos, nil
}

func (r *vaccineRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vaccines WHERE vaccine_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vaccine: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
