package model

import "time"

type Review struct {
	ID         int64     `db:"review_id" json:"review_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	HospitalID int64     `db:"hospital_id" json:"hospital_id"`
	DoctorID   int64     `db:"doctor_id" json:"doctor_id"`
	Rating     int       `db:"rating" json:"rating"`
	ReviewText *string   `db:"review_text" json:"review_text,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// HospitalReview is a review joined with the reviewer's username for the
// hospital admin's review listing.
type HospitalReview struct {
	ID         int64     `db:"review_id" json:"review_id"`
	Username   string    `db:"username" json:"username"`
	Rating     int       `db:"rating" json:"rating"`
	ReviewText *string   `db:"review_text" json:"review_text,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type SubmitReviewRequest struct {
	HospitalID int64  `json:"hospital_id" binding:"required"`
	DoctorID   int64  `json:"doctor_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	ReviewText string `json:"review_text" binding:"max=2000"`
}
