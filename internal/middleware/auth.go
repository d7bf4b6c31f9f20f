package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

// Context keys set by the auth middleware
const (
	ViewerKey   = "viewer"
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ViewerResolver is implemented by validators that can refresh a token's
// identity from storage. Admin changes and deleted accounts then apply
// before the token expires.
type ViewerResolver interface {
	CurrentViewer(ctx context.Context, claims *types.TokenClaims) (types.Viewer, error)
}

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication credentials were not provided"})
			return
		}
		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		viewer := types.Viewer{ID: claims.UserID, IsAdmin: claims.IsAdmin}
		if resolver, ok := validator.(ViewerResolver); ok {
			viewer, err = resolver.CurrentViewer(c.Request.Context(), claims)
			if err != nil {
				if service.KindOf(err) == service.KindUnauthorized {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
					return
				}
				_ = c.Error(err)
				c.Abort()
				return
			}
		}
		setViewer(c, viewer, claims.Username)
		c.Next()
	}
}

// OptionalAuth identifies the viewer when a token is present and lets
// anonymous requests through. A malformed or invalid token is still
// rejected so clients notice.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		AuthMiddleware(validator)(c)
	}
}

// ViewerFrom returns the viewer stored by the auth middleware, or an
// anonymous viewer
func ViewerFrom(c *gin.Context) types.Viewer {
	if v, ok := c.Get(ViewerKey); ok {
		if viewer, ok := v.(types.Viewer); ok {
			return viewer
		}
	}
	return types.Viewer{}
}

func setViewer(c *gin.Context, viewer types.Viewer, username string) {
	c.Set(ViewerKey, viewer)
	c.Set(UserIDKey, viewer.ID)
	c.Set(UsernameKey, username)
}

// bearerToken accepts both "Bearer" and the DRF style "Token" scheme
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 {
		return "", false
	}
	switch parts[0] {
	case "Bearer", "Token":
		return parts[1], true
	default:
		return "", false
	}
}
