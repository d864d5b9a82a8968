package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vaxtrack/booking-api/internal/model"
)

// ErrNotFound is returned when a requested row does not exist or is not
// visible to the caller (ownership-scoped queries included).
var ErrNotFound = errors.New("not found")

// ErrOutOfStock is returned when a booking confirmation finds no stock
// left for the requested vaccine at the hospital.
var ErrOutOfStock = errors.New("out of stock")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, phone, address, emergencyContact string) error
	List(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type HospitalRepository interface {
	List(ctx context.Context) ([]*model.Hospital, error)
	Get(ctx context.Context, id int64) (*model.Hospital, error)
	GetByAdminID(ctx context.Context, adminUserID int64) (*model.Hospital, error)
	AssignAdmin(ctx context.Context, hospitalID, adminUserID int64) error
	ListByVaccine(ctx context.Context, vaccineID int64, city string) ([]*model.Hospital, error)
	Delete(ctx context.Context, id int64) error
}

type DoctorRepository interface {
	ListByHospital(ctx context.Context, hospitalID int64) ([]*model.Doctor, error)
}

type VaccineRepository interface {
	List(ctx context.Context, filter model.VaccineFilter) ([]*model.Vaccine, error)
	ListWithInfo(ctx context.Context) ([]*model.VaccineInfo, error)
	Delete(ctx context.Context, id int64) error
}

type InventoryRepository interface {
	ListByHospital(ctx context.Context, hospitalID int64) ([]*model.InventoryRow, error)
	ListExpired(ctx context.Context, hospitalID int64, asOf time.Time) ([]*model.InventoryRow, error)
	GetPrice(ctx context.Context, vaccineID, hospitalID int64) (float64, error)
	// AddWithVaccine resolves the vaccine by exact name, creating it when
	// absent, and inserts the inventory row, all in one transaction.
	AddWithVaccine(ctx context.Context, vaccineName, vaccineType string, item *model.InventoryItem) error
	// OwnedBy reports whether the inventory row belongs to the hospital
	// administered by the given user.
	OwnedBy(ctx context.Context, inventoryID, adminUserID int64) (bool, error)
	UpdateStock(ctx context.Context, inventoryID int64, quantity int) error
	Delete(ctx context.Context, inventoryID int64) error
}

type AppointmentRepository interface {
	// Confirm decrements the inventory stock and inserts the confirmed
	// appointment in a single transaction. ErrOutOfStock aborts it whole.
	Confirm(ctx context.Context, apt *model.Appointment) error
	GetByCheckoutRef(ctx context.Context, ref string) (*model.Appointment, error)
	GetOwned(ctx context.Context, id, userID int64) (*model.Appointment, error)
	GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.AppointmentDetail, error)
	// Cancel deletes the appointment and restocks the matching inventory
	// row by one, transactionally.
	Cancel(ctx context.Context, apt *model.Appointment) error
	Reschedule(ctx context.Context, id, userID int64, newDate time.Time) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error)
	MarkDelivered(ctx context.Context, userID int64) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByHospital(ctx context.Context, hospitalID int64) ([]*model.HospitalReview, error)
}

type InsuranceRepository interface {
	Create(ctx context.Context, detail *model.InsuranceDetail) error
	ListByUser(ctx context.Context, userID int64) ([]*model.InsuranceDetail, error)
	GetOwned(ctx context.Context, id, userID int64) (*model.InsuranceDetail, error)
	UpdateOwned(ctx context.Context, detail *model.InsuranceDetail) error
	DeleteOwned(ctx context.Context, id, userID int64) error
}
