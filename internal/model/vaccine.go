package model

import "time"

type Vaccine struct {
	ID        int64     `db:"vaccine_id" json:"vaccine_id"`
	Name      string    `db:"vaccine_name" json:"vaccine_name"`
	Type      *string   `db:"vaccine_type" json:"vaccine_type,omitempty"`
	Category  *string   `db:"category" json:"category,omitempty"`
	ImageURL  *string   `db:"image_url" json:"image_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// VaccineInfo joins a vaccine with its descriptive information record
// for the awareness page.
type VaccineInfo struct {
	Vaccine
	HowItWorks    *string `db:"how_it_works" json:"how_it_works,omitempty"`
	SideEffects   *string `db:"side_effects" json:"side_effects,omitempty"`
	Precautions   *string `db:"precautions" json:"precautions,omitempty"`
	Effectiveness *string `db:"effectiveness" json:"effectiveness,omitempty"`
}

// VaccineFilter composes the catalog filters: Search is a
// case-insensitive substring match on the name, Category an exact match.
// Both together are ANDed.
type VaccineFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}
