package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
)

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	query := `SELECT * FROM hospitals ORDER BY hospital_name`

	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query); err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) Get(ctx context.Context, id int64) (*model.Hospital, error) {
	query := `SELECT * FROM hospitals WHERE hospital_id = $1`

	var hospital model.Hospital
	if err := r.db.GetContext(ctx, &hospital, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) GetByAdminID(ctx context.Context, adminUserID int64) (*model.Hospital, error) {
	query := `SELECT * FROM hospitals WHERE hospital_admin_id = $1`

	var hospital model.Hospital
	if err := r.db.GetContext(ctx, &hospital, query, adminUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hospital by admin: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) AssignAdmin(ctx context.Context, hospitalID, adminUserID int64) error {
	query := `
		UPDATE hospitals
		SET hospital_admin_id = $1, updated_at = NOW()
		WHERE hospital_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, adminUserID, hospitalID)
	if err != nil {
		return fmt.Errorf("failed to assign hospital admin: %w", err)
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

func (r *hospitalRepository) ListByVaccine(ctx context.Context, vaccineID int64, city string) ([]*model.Hospital, error) {
	query := `
		SELECT DISTINCT h.hospital_id, h.hospital_name, h.location, h.phone, h.image_url,
		       h.hospital_admin_id, h.created_at, h.updated_at
		FROM hospitals h
		JOIN vaccine_inventory vi ON h.hospital_id = vi.hospital_id
		WHERE vi.vaccine_id = $1
	`
	args := []interface{}{vaccineID}

	if city != "" {
		query += ` AND LOWER(h.location) LIKE '%' || $2 || '%'`
		args = append(args, city)
	}

	var hospitals []*model.Hospital
	if err := r.db.SelectContext(ctx, &hospitals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list hospitals for vaccine: %w", err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hospitals WHERE hospital_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
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

func (r *doctorRepository) ListByHospital(ctx context.Context, hospitalID int64) ([]*model.Doctor, error) {
	query := `
		SELECT doctor_id, hospital_id, doctor_name, specialization, image_url
		FROM doctors
		WHERE hospital_id = $1
		ORDER BY doctor_name
	`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
