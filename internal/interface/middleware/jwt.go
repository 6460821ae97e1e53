package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/date-app-backend/pkg/helpers"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxSessionKey   = "sessionID"
)

// accessToken reads the bearer token, falling back to the access_token cookie
// set by the web client.
func accessToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	tok, err := c.Cookie(helpers.AccessCookie)
	if err != nil {
		return ""
	}
	return tok
}

// UserID returns the authenticated user's id set by Auth.
func UserID(c *gin.Context) string { return c.GetString(CtxUserIDKey) }

// UserEmail returns the authenticated user's email set by Auth.
func UserEmail(c *gin.Context) string { return c.GetString(CtxUserEmailKey) }
