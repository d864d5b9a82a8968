package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/vaxtrack/booking-api/internal/model"
)

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, status, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING notification_id
	`
	if n.Status == "" {
		n.Status = model.NotificationStatusPending
	}
	n.SentAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query, n.UserID, n.Message, n.Status, n.SentAt).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error) {
	query := `
		SELECT notification_id, user_id, message, status, sent_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY sent_at DESC
	`

	var notifications []*model.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, userID int64) error {
	query := `
		UPDATE notifications
		SET status = $1
		WHERE user_id = $2 AND status = $3
	`
	_, err := r.db.ExecContext(ctx, query,
		model.NotificationStatusDelivered, userID, model.NotificationStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark notifications delivered: %w", err)
	}
	return nil
}
