package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
)

func (r *appointmentRepository) Confirm(ctx context.Context, apt *model.Appointment) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE vaccine_inventory
			SET stock_quantity = stock_quantity - 1, last_updated = NOW()
			WHERE vaccine_id = $1 AND hospital_id = $2 AND stock_quantity > 0
		`, apt.VaccineID, apt.HospitalID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrOutOfStock
		}

		apt.Status = model.AppointmentStatusConfirmed
		apt.CreatedAt = time.Now()
		apt.UpdatedAt = apt.CreatedAt

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO appointments (user_id, doctor_id, vaccine_id, hospital_id,
				appointment_date, status, checkout_ref, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING appointment_id
		`, apt.UserID, apt.DoctorID, apt.VaccineID, apt.HospitalID,
			apt.AppointmentDate, apt.Status, apt.CheckoutRef, apt.CreatedAt, apt.UpdatedAt,
		).Scan(&apt.ID)
		if err != nil {
			return fmt.Errorf("failed to insert appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) GetByCheckoutRef(ctx context.Context, ref string) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE checkout_ref = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, ref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment by checkout ref: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) GetOwned(ctx context.Context, id, userID int64) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE appointment_id = $1 AND user_id = $2`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	query := `
		SELECT a.appointment_id, v.vaccine_name, a.hospital_id, h.hospital_name,
		       d.doctor_id, d.doctor_name, a.appointment_date, a.status
		FROM appointments a
		JOIN vaccines v ON a.vaccine_id = v.vaccine_id
		JOIN hospitals h ON a.hospital_id = h.hospital_id
		JOIN doctors d ON a.doctor_id = d.doctor_id
		WHERE a.appointment_id = $1
	`

	var detail model.AppointmentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment detail: %w", err)
	}
	return &detail, nil
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID int64) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.appointment_id, v.vaccine_name, a.hospital_id, h.hospital_name,
		       d.doctor_id, d.doctor_name, a.appointment_date, a.status
		FROM appointments a
		JOIN vaccines v ON a.vaccine_id = v.vaccine_id
		JOIN hospitals h ON a.hospital_id = h.hospital_id
		JOIN doctors d ON a.doctor_id = d.doctor_id
		WHERE a.user_id = $1
		ORDER BY a.appointment_date
	`

	var appointments []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, apt *model.Appointment) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM appointments WHERE appointment_id = $1 AND user_id = $2`,
			apt.ID, apt.UserID)
		if err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrNotFound
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE vaccine_inventory
			SET stock_quantity = stock_quantity + 1, last_updated = NOW()
			WHERE vaccine_id = $1 AND hospital_id = $2
		`, apt.VaccineID, apt.HospitalID)
		if err != nil {
			return fmt.Errorf("failed to restock inventory: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) Reschedule(ctx context.Context, id, userID int64, newDate time.Time) error {
	query := `
		UPDATE appointments
		SET appointment_date = $1, updated_at = NOW()
		WHERE appointment_id = $2 AND user_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, newDate, id, userID)
	if err != nil {
		return fmt.Errorf("failed to reschedule appointment: %w", err)
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
