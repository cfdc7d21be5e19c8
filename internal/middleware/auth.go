package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"questionbank/internal/modules/auth"
	"questionbank/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "auth_session"
	userIDKey  = "user_id"
	emailKey   = "email"
)

// SessionValidator resolves a bearer token to a live session.
type SessionValidator interface {
	Current(ctx context.Context, token string) (*auth.Session, error)
}

// AdminChecker answers allow-list lookups.
type AdminChecker interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RequireAdminSession re-validates the caller on every request: the token
// signature, then the stored session, then the allow-list. A token that
// outlives its session or its admin entry is rejected.
func RequireAdminSession(sessions SessionValidator, admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		sess, err := sessions.Current(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrSessionRevoked):
				response.Abort(c, http.StatusUnauthorized, "SESSION_REVOKED", "Session has been signed out")
			case errors.Is(err, auth.ErrSessionExpired):
				response.Abort(c, http.StatusUnauthorized, "SESSION_EXPIRED", "Session has expired")
			case errors.Is(err, auth.ErrUnauthorized):
				response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			default:
				log.Printf("auth: session_lookup_failed request_id=%s err=%v", requestID(c), err)
				response.Abort(c, http.StatusInternalServerError, "SESSION_CHECK_FAILED", "Failed to verify session")
			}
			return
		}

		isAdmin, err := admins.ExistsByEmail(c.Request.Context(), sess.Email)
		if err != nil {
			log.Printf("auth: admin_check_failed request_id=%s email=%s err=%v", requestID(c), sess.Email, err)
			response.Abort(c, http.StatusInternalServerError, "ADMIN_CHECK_FAILED", "Failed to verify admin status")
			return
		}
		if !isAdmin {
			response.Abort(c, http.StatusForbidden, "NOT_ADMIN", "This email is not registered as an admin")
			return
		}

		c.Set(sessionKey, sess)
		c.Set(userIDKey, sess.UserID)
		c.Set(emailKey, sess.Email)
		c.Next()
	}
}

// SessionFrom returns the session stored by RequireAdminSession.
func SessionFrom(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*auth.Session)
	return sess, ok && sess != nil
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
		return "", false
	}
	if !strings.HasPrefix(h, "Bearer ") {
		response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
		return "", false
	}
	return token, true
}
