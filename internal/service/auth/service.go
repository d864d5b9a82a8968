package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaxtrack/booking-api/internal/model"
	"github.com/vaxtrack/booking-api/internal/repository"
	"github.com/vaxtrack/booking-api/internal/session"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
	"github.com/vaxtrack/booking-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Role-dependent landing paths returned after login.
const (
	redirectSiteAdmin     = "/admin/dashboard"
	redirectHospitalAdmin = "/admin-dashboard"
	redirectUser          = "/vaccines"
)

type Service struct {
	userRepo     repository.UserRepository
	hospitalRepo repository.HospitalRepository
	hasher       security.PasswordHasher
	sessions     session.Store
	codec        *session.TokenCodec
	sessionTTL   time.Duration
}

func NewService(
	userRepo repository.UserRepository,
	hospitalRepo repository.HospitalRepository,
	hasher security.PasswordHasher,
	sessions session.Store,
	codec *session.TokenCodec,
	sessionTTL time.Duration,
) *Service {
	return &Service{
		userRepo:     userRepo,
		hospitalRepo: hospitalRepo,
		hasher:       hasher,
		sessions:     sessions,
		codec:        codec,
		sessionTTL:   sessionTTL,
	}
}

// Register creates a user or hospital_admin account. Site admin accounts
// are never self-registered. A duplicate email leaves the table
// unchanged and reports a conflict the client can render as a warning.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) error {
	if req.Role != model.RoleUser && req.Role != model.RoleHospitalAdmin {
		return apperrors.BadRequest("invalid role specified", nil)
	}
	if req.Role == model.RoleHospitalAdmin && req.HospitalID == nil {
		return apperrors.BadRequest("hospital is required for a hospital admin account", nil)
	}

	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return apperrors.Conflict("email already exists, please use a different email", nil)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	// Resolve the hospital up front so a bogus id never leaves behind an
	// admin account with no hospital.
	if req.Role == model.RoleHospitalAdmin {
		if _, err := s.hospitalRepo.Get(ctx, *req.HospitalID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.BadRequest("hospital not found", err)
			}
			return fmt.Errorf("failed to check hospital: %w", err)
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if req.Role == model.RoleHospitalAdmin {
		if err := s.hospitalRepo.AssignAdmin(ctx, *req.HospitalID, user.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.BadRequest("hospital not found", err)
			}
			return fmt.Errorf("failed to assign hospital: %w", err)
		}
	}
	return nil
}

// Login verifies credentials, creates a session and returns the signed
// token plus the role-based landing path.
func (s *Service) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid username or password", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized("invalid username or password", ErrInvalidCredentials)
	}

	var hospitalID *int64
	if user.Role == model.RoleHospitalAdmin {
		hospital, err := s.hospitalRepo.GetByAdminID(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve hospital: %w", err)
		}
		if hospital != nil {
			hospitalID = &hospital.ID
		}
	}

	sess := session.New(user.ID, user.Username, user.Role, hospitalID, s.sessionTTL)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.codec.Sign(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &model.LoginResponse{
		Token:    token,
		Role:     user.Role,
		Redirect: landingPath(user.Role),
	}, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *Service) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) error {
	err := s.userRepo.UpdateProfile(ctx, userID, req.Phone, req.Address, req.EmergencyContact)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("user", err)
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func landingPath(role string) string {
	switch role {
	case model.RoleSiteAdmin:
		return redirectSiteAdmin
	case model.RoleHospitalAdmin:
		return redirectHospitalAdmin
	default:
		return redirectUser
	}
}
