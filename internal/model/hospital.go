package model

import "time"

// Hospital is owned by at most one hospital_admin user via HospitalAdminID.
type Hospital struct {
	ID              int64     `db:"hospital_id" json:"hospital_id"`
	Name            string    `db:"hospital_name" json:"hospital_name"`
	Location        string    `db:"location" json:"location"`
	Phone           *string   `db:"phone" json:"phone,omitempty"`
	ImageURL        *string   `db:"image_url" json:"image_url,omitempty"`
	HospitalAdminID *int64    `db:"hospital_admin_id" json:"hospital_admin_id,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type Doctor struct {
	ID             int64   `db:"doctor_id" json:"doctor_id"`
	HospitalID     int64   `db:"hospital_id" json:"hospital_id"`
	Name           string  `db:"doctor_name" json:"doctor_name"`
	Specialization *string `db:"specialization" json:"specialization,omitempty"`
	ImageURL       *string `db:"image_url" json:"image_url,omitempty"`
}
