package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/vaxtrack/booking-api/internal/repository"
)

type userRepository struct {
	BaseRepository
}

type hospitalRepository struct {
	BaseRepository
}

type doctorRepository struct {
	BaseRepository
}

type vaccineRepository struct {
	BaseRepository
}

type inventoryRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

type notificationRepository struct {
	BaseRepository
}

type reviewRepository struct {
	BaseRepository
}

type insuranceRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{NewBaseRepository(db)}
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{NewBaseRepository(db)}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

func NewVaccineRepository(db *sqlx.DB) repository.VaccineRepository {
	return &vaccineRepository{NewBaseRepository(db)}
}

func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{NewBaseRepository(db)}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{NewBaseRepository(db)}
}

func NewReviewRepository(db *sqlx.DB) repository.ReviewRepository {
	return &reviewRepository{NewBaseRepository(db)}
}

func NewInsuranceRepository(db *sqlx.DB) repository.InsuranceRepository {
	return &insuranceRepository{NewBaseRepository(db)}
}
