package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// Appointment is created only after a successful payment callback.
// CheckoutRef holds the provider checkout session id and is unique, so a
// replayed callback resolves to the already-created row.
type Appointment struct {
	ID              int64             `db:"appointment_id" json:"appointment_id"`
	UserID          int64             `db:"user_id" json:"user_id"`
	DoctorID        int64             `db:"doctor_id" json:"doctor_id"`
	VaccineID       int64             `db:"vaccine_id" json:"vaccine_id"`
	HospitalID      int64             `db:"hospital_id" json:"hospital_id"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CheckoutRef     *string           `db:"checkout_ref" json:"-"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail joins an appointment with display names for listing
// and for the review prompt.
type AppointmentDetail struct {
	ID              int64             `db:"appointment_id" json:"appointment_id"`
	VaccineName     string            `db:"vaccine_name" json:"vaccine_name"`
	HospitalID      int64             `db:"hospital_id" json:"hospital_id"`
	HospitalName    string            `db:"hospital_name" json:"hospital_name"`
	DoctorID        int64             `db:"doctor_id" json:"doctor_id"`
	DoctorName      string            `db:"doctor_name" json:"doctor_name"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	Status          AppointmentStatus `db:"status" json:"status"`
}

type CheckoutRequest struct {
	VaccineID       int64  `json:"vaccine_id" binding:"required"`
	HospitalID      int64  `json:"hospital_id" binding:"required"`
	DoctorID        int64  `json:"doctor_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
}

type RescheduleRequest struct {
	AppointmentID      int64  `json:"appointment_id" binding:"required"`
	NewAppointmentDate string `json:"new_appointment_date" binding:"required"`
}
