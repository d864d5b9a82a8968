package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
)

func (r *insuranceRepository) Create(ctx context.Context, detail *model.InsuranceDetail) error {
	query := `
		INSERT INTO insurance_details (user_id, insurance_provider, policy_number, coverage_amount, expiry_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING insurance_id
	`
	err := r.db.QueryRowxContext(ctx, query,
		detail.UserID,
		detail.Provider,
		detail.PolicyNumber,
		detail.CoverageAmount,
		detail.ExpiryDate,
	).Scan(&detail.ID)
	if err != nil {
		return fmt.Errorf("failed to create insurance detail: %w", err)
	}
	return nil
}

func (r *insuranceRepository) ListByUser(ctx context.Context, userID int64) ([]*model.InsuranceDetail, error) {
	query := `SELECT * FROM insurance_details WHERE user_id = $1 ORDER BY insurance_id`

	var details []*model.InsuranceDetail
	if err := r.db.SelectContext(ctx, &details, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list insurance details: %w", err)
	}
	return details, nil
}

func (r *insuranceRepository) GetOwned(ctx context.Context, id, userID int64) (*model.InsuranceDetail, error) {
	query := `SELECT * FROM insurance_details WHERE insurance_id = $1 AND user_id = $2`

	var detail model.InsuranceDetail
	if err := r.db.GetContext(ctx, &detail, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get insurance detail: %w", err)
	}
	return &detail, nil
}

func (r *insuranceRepository) UpdateOwned(ctx context.Context, detail *model.InsuranceDetail) error {
	query := `
		UPDATE insurance_details
		SET insurance_provider = $1, policy_number = $2, coverage_amount = $3, expiry_date = $4
		WHERE insurance_id = $5 AND user_id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		detail.Provider,
		detail.PolicyNumber,
		detail.CoverageAmount,
		detail.ExpiryDate,
		detail.ID,
		detail.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update insurance detail: %w", err)
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

func (r *insuranceRepository) DeleteOwned(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM insurance_details WHERE insurance_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete insurance detail: %w", err)
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
