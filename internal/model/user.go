package model

import "time"

// User roles
const (
	RoleUser          = "user"
	RoleHospitalAdmin = "hospital_admin"
	RoleSiteAdmin     = "admin"
)

// User represents an account of any role. A hospital_admin is linked to
// its hospital through hospitals.hospital_admin_id, not a column here.
type User struct {
	ID               int64     `db:"user_id" json:"user_id"`
	Username         string    `db:"username" json:"username"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	Email            string    `db:"email" json:"email"`
	Role             string    `db:"role" json:"role"`
	Phone            *string   `db:"phone" json:"phone,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	EmergencyContact *string   `db:"emergency_contact" json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role" binding:"required,oneof=user hospital_admin"`
	HospitalID *int64 `json:"hospital_id"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token plus the role-dependent landing
// path a browser client should navigate to.
type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

type UpdateProfileRequest struct {
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
}
