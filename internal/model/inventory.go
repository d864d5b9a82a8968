package model

import "time"

// InventoryItem is the priced, stocked association between one vaccine
// and one hospital, owned by that hospital's admin.
type InventoryItem struct {
	ID            int64      `db:"inventory_id" json:"inventory_id"`
	HospitalID    int64      `db:"hospital_id" json:"hospital_id"`
	VaccineID     int64      `db:"vaccine_id" json:"vaccine_id"`
	StockQuantity int        `db:"stock_quantity" json:"stock_quantity"`
	ExpiryDate    *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	Price         float64    `db:"price" json:"price"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	ImageURL      *string    `db:"image_url" json:"image_url,omitempty"`
	LastUpdated   time.Time  `db:"last_updated" json:"last_updated"`
}

// InventoryRow is an inventory item joined with its vaccine name, the
// shape both the admin view and the hospital catalog view render.
type InventoryRow struct {
	InventoryItem
	VaccineName string `db:"vaccine_name" json:"vaccine_name"`
}

type AddInventoryRequest struct {
	VaccineName   string  `form:"vaccine_name" binding:"required"`
	VaccineType   string  `form:"vaccine_type"`
	StockQuantity int     `form:"stock_quantity" binding:"min=0"`
	ExpiryDate    string  `form:"expiry_date"`
	Price         float64 `form:"price" binding:"min=0"`
	Notes         string  `form:"notes"`
}

type UpdateInventoryRequest struct {
	InventoryID int64 `json:"inventory_id" binding:"required"`
	Quantity    int   `json:"quantity" binding:"min=0"`
}

type RemoveInventoryRequest struct {
	InventoryID int64 `json:"inventory_id" binding:"required"`
}
