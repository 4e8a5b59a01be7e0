package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	repo "github.com/yogapratama/leasedrive/internal/domain/repository"
	"github.com/yogapratama/leasedrive/pkg/helpers"
	"github.com/yogapratama/leasedrive/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxRoleKey   = "userRole"
)

// Auth validates the access token, checks the Redis session, and rejects
// tokens issued before the user's last password change.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		if rdb != nil {
			var sess helpers.Session
			ok, rErr := helpers.RedisGetJSON(c.Request.Context(), rdb, helpers.SessionKey(claims.UserID), &sess)
			if rErr != nil || !ok || sess.SID != claims.SessionID {
				response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
		}

		// A password change invalidates every token minted before it.
		if users != nil && claims.IssuedAt != nil {
			u, uErr := users.GetByID(claims.UserID)
			if uErr != nil {
				response.AbortError(c, http.StatusUnauthorized, "unknown user", nil)
				return
			}
			if entity.WasPasswordChangedAfter(u, claims.IssuedAt.Time) {
				response.AbortError(c, http.StatusUnauthorized, "token issued before password change", nil)
				return
			}
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, string(claims.Role))
		c.Next()
	}
}

// RequireRole gates a route group on the caller's role, e.g. admin-only
// dealership decisions.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[c.GetString(CtxRoleKey)]; !ok {
			response.AbortError(c, http.StatusForbidden, "insufficient role", nil)
			return
		}
		c.Next()
	}
}
