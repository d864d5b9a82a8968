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

func (r *inventoryRepository) ListByHospital(ctx context.Context, hospitalID int64) ([]*model.InventoryRow, error) {
	query := `
		SELECT vi.inventory_id, vi.hospital_id, vi.vaccine_id, vi.stock_quantity,
		       vi.expiry_date, vi.price, vi.notes, vi.image_url, vi.last_updated,
		       v.vaccine_name
		FROM vaccine_inventory vi
		JOIN vaccines v ON vi.vaccine_id = v.vaccine_id
		WHERE vi.hospital_id = $1
		ORDER BY v.vaccine_name
	`

	var rows []*model.InventoryRow
	if err := r.db.SelectContext(ctx, &rows, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return rows, nil
}

func (r *inventoryRepository) ListExpired(ctx context.Context, hospitalID int64, asOf time.Time) ([]*model.InventoryRow, error) {
	query := `
		SELECT vi.inventory_id, vi.hospital_id, vi.vaccine_id, vi.stock_quantity,
		       vi.expiry_date, vi.price, vi.notes, vi.image_url, vi.last_updated,
		       v.vaccine_name
		FROM vaccine_inventory vi
		JOIN vaccines v ON vi.vaccine_id = v.vaccine_id
		WHERE vi.hospital_id = $1 AND vi.expiry_date < $2
		ORDER BY vi.expiry_date
	`

	var rows []*model.InventoryRow
	if err := r.db.SelectContext(ctx, &rows, query, hospitalID, asOf); err != nil {
		return nil, fmt.Errorf("failed to list expired inventory: %w", err)
	}
	return rows, nil
}

func (r *inventoryRepository) GetPrice(ctx context.Context, vaccineID, hospitalID int64) (float64, error) {
	query := `
		SELECT price FROM vaccine_inventory
		WHERE vaccine_id = $1 AND hospital_id = $2
	`

	var price float64
	if err := r.db.GetContext(ctx, &price, query, vaccineID, hospitalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get price: %w", err)
	}
	return price, nil
}

func (r *inventoryRepository) AddWithVaccine(ctx context.Context, vaccineName, vaccineType string, item *model.InventoryItem) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Concurrent adds of the same name converge on one vaccine row.
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vaccines (vaccine_name, vaccine_type, created_at, updated_at)
			VALUES ($1, NULLIF($2, ''), NOW(), NOW())
			ON CONFLICT (vaccine_name) DO NOTHING
		`, vaccineName, vaccineType)
		if err != nil {
			return fmt.Errorf("failed to upsert vaccine: %w", err)
		}

		var vaccineID int64
		if err := tx.GetContext(ctx, &vaccineID,
			`SELECT vaccine_id FROM vaccines WHERE vaccine_name = $1`, vaccineName); err != nil {
			return fmt.Errorf("failed to resolve vaccine: %w", err)
		}
		item.VaccineID = vaccineID

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO vaccine_inventory (hospital_id, vaccine_id, stock_quantity, expiry_date, price, notes, image_url, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			RETURNING inventory_id, last_updated
		`, item.HospitalID, vaccineID, item.StockQuantity, item.ExpiryDate, item.Price, item.Notes, item.ImageURL,
		).Scan(&item.ID, &item.LastUpdated)
		if err != nil {
			return fmt.Errorf("failed to insert inventory row: %w", err)
		}
		return nil
	})
}

func (r *inventoryRepository) OwnedBy(ctx context.Context, inventoryID, adminUserID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM vaccine_inventory vi
			JOIN hospitals h ON vi.hospital_id = h.hospital_id
			WHERE vi.inventory_id = $1 AND h.hospital_admin_id = $2
		)
	`

	var owned bool
	if err := r.db.GetContext(ctx, &owned, query, inventoryID, adminUserID); err != nil {
		return false, fmt.Errorf("failed to check inventory ownership: %w", err)
	}
	return owned, nil
}

func (r *inventoryRepository) UpdateStock(ctx context.Context, inventoryID int64, quantity int) error {
	query := `
		UPDATE vaccine_inventory
		SET stock_quantity = $1, last_updated = NOW()
		WHERE inventory_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, quantity, inventoryID)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
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

func (r *inventoryRepository) Delete(ctx context.Context, inventoryID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM vaccine_inventory WHERE inventory_id = $1`, inventoryID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory row: %w", err)
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
