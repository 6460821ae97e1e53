package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
	"github.com/oksasatya/date-app-backend/pkg/response"
)

// Auth validates the access token and, when a session store is configured,
// that the token belongs to the user's current session. It sets userID,
// userEmail and sessionID in the Gin context on success.
func Auth(sessions repository.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		if sessions != nil {
			sess, err := sessions.Get(c.Request.Context(), claims.UserID)
			if err != nil || sess.SessionID != claims.SessionID {
				response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				c.Abort()
				return
			}
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxSessionKey, claims.SessionID)
		c.Next()
	}
}
