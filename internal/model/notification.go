package model

import "time"

type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "pending"
	NotificationStatusDelivered NotificationStatus = "delivered"
	NotificationStatusSent      NotificationStatus = "sent"
)

type Notification struct {
	ID      int64              `db:"notification_id" json:"notification_id"`
	UserID  int64              `db:"user_id" json:"user_id"`
	Message string             `db:"message" json:"message"`
	Status  NotificationStatus `db:"status" json:"status"`
	SentAt  time.Time          `db:"sent_at" json:"sent_at"`
}
