package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vaxtrack/booking-api/internal/session"
	apperrors "github.com/vaxtrack/booking-api/pkg/errors"
	"github.com/vaxtrack/booking-api/pkg/httputil"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextSession    = "session"
	ContextUserID     = "user_id"
	ContextUsername   = "username"
	ContextRole       = "role"
	ContextHospitalID = "hospital_id"
)

// SessionCookie is accepted as a fallback for browser flows where the
// payment provider redirect cannot carry an Authorization header.
const SessionCookie = "vaxtrack_session"

type AuthMiddleware struct {
	store session.Store
	codec *session.TokenCodec
}

func NewAuthMiddleware(store session.Store, codec *session.TokenCodec) *AuthMiddleware {
	return &AuthMiddleware{store: store, codec: codec}
}

// Authenticate resolves the signed session token into a live server-side
// session and sets the caller's identity in context. A missing, invalid
// or expired session aborts with 401.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httputil.AbortWithError(c, apperrors.Unauthorized("authentication required", nil))
			return
		}

		sid, err := m.codec.Parse(token)
		if err != nil {
			httputil.AbortWithError(c, apperrors.Unauthorized("invalid session token", err))
			return
		}

		sess, err := m.store.Get(c.Request.Context(), sid)
		if err != nil {
			httputil.AbortWithError(c, apperrors.Unauthorized("session expired, please log in again", err))
			return
		}

		c.Set(ContextSession, sess)
		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextUsername, sess.Username)
		c.Set(ContextRole, sess.Role)
		if sess.HospitalID != nil {
			c.Set(ContextHospitalID, *sess.HospitalID)
		}
		c.Next()
	}
}

// RequireRole gates a route group to one role. It runs after
// Authenticate and aborts with 403 for any other role.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			httputil.AbortWithError(c, apperrors.Forbidden("insufficient permissions", nil))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// UserID returns the authenticated caller's user id from context.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

// SessionID returns the live session's id, empty when unauthenticated.
func SessionID(c *gin.Context) string {
	sess, ok := c.Get(ContextSession)
	if !ok {
		return ""
	}
	return sess.(*session.Session).ID
}
