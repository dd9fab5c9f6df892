package token

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextAccountID is the Gin context key holding the authenticated account ID.
const ContextAccountID = "accountID"

// CookieName is the cookie the browser frontend uses to carry the session token.
const CookieName = "session_token"

// SessionValidator resolves a session token to the bound account ID.
// Following Go convention: interfaces are defined by the consumer (middleware),
// not the provider (account usecase).
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (uint, error)
}

// FromRequest extracts the session token from the Authorization header
// (Bearer scheme) or, failing that, from the session cookie.
func FromRequest(c *gin.Context) (string, bool) {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer "), true
	}
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// AuthRequired returns a Gin middleware that validates the session token
// and restricts access to authenticated accounts only.
// Validation goes through the session store on every request, so a completed
// logout is rejected here immediately.
func AuthRequired(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := FromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "error": "NOT LOGGED IN"})
			return
		}

		accountID, err := validator.ValidateSession(c.Request.Context(), tok)
		if err != nil {
			// Revoked, expired, unknown and forged tokens all read the same to the caller.
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "error": "NOT LOGGED IN"})
			return
		}

		c.Set(ContextAccountID, accountID)
		c.Next()
	}
}
