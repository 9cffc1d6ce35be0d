package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"gopherpress/internal/pkg/jwtutil"
	"gopherpress/internal/transport/http/response"
)

const (
	ContextUserIDKey  = "user_id"
	ContextNameKey    = "name"
	ContextTokenIDKey = "token_id"
	ContextClaimsKey  = "claims"
)

// RevocationChecker reports whether a token id has been logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthJWT gates every post operation: requests without a valid,
// unrevoked bearer token are turned away with the login entry point.
func AuthJWT(secret, loginPath string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Unauthenticated(c, loginPath, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Unauthenticated(c, loginPath, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Unauthenticated(c, loginPath, "invalid or expired token")
			c.Abort()
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				response.Error(c, 500, response.CodeInternalServer, "token check failed")
				c.Abort()
				return
			}
			if isRevoked {
				response.Unauthenticated(c, loginPath, "token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextNameKey, claims.Name)
		c.Set(ContextTokenIDKey, claims.ID)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}
