package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/vaxtrack/booking-api/internal/model"
)

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (user_id, hospital_id, doctor_id, rating, review_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING review_id
	`
	review.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query,
		review.UserID,
		review.HospitalID,
		review.DoctorID,
		review.Rating,
		review.ReviewText,
		review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListByHospital(ctx context.Context, hospitalID int64) ([]*model.HospitalReview, error) {
	query := `
		SELECT r.review_id, u.username, r.rating, r.review_text, r.created_at
		FROM reviews r
		JOIN users u ON r.user_id = u.user_id
		WHERE r.hospital_id = $1
		ORDER BY r.created_at DESC
	`

	var reviews []*model.HospitalReview
	if err := r.db.SelectContext(ctx, &reviews, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list hospital reviews: %w", err)
	}
	return reviews, nil
}
