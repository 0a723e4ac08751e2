package transport

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/miracool-ctrl/backend-voteapp/auth"
	"github.com/miracool-ctrl/backend-voteapp/logging"
)

const (
	ContextVoterID = "voterID"
	ContextIsAdmin = "isAdmin"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the token's voter id and admin flag on the context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Message: "Not authorized, no token"})
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Message: "Not authorized, malformed token"})
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			logging.Log.Warnf("AUTH: rejected token on %s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Message: "Not authorized, token failed"})
			return
		}

		c.Set(ContextVoterID, claims.VoterID)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			logging.Log.Warnf("AUTH: non-admin %s denied on %s %s", c.GetString(ContextVoterID), c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Message: "You are not authorized to perform this action"})
			return
		}
		c.Next()
	}
}
