package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	mem "purelife/pkg/memcache"
	"purelife/pkg/utils"
)

const principalKey = "principal"

// Principal is the authenticated caller, resolved once per request.
type Principal struct {
	ID      uint
	Account string
	Role    utils.Role
	Token   string
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func JWTAuthMiddleware(tokens *utils.TokenManager, revoked mem.RevokedTokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			utils.HandleServiceError(c, utils.ErrNotAuthenticated)
			return
		}

		claims, ok := tokens.ValidateToken(tokenString)
		if !ok || revoked.IsRevoked(tokenString) {
			utils.HandleServiceError(c, utils.ErrNotAuthenticated.Withf("Invalid or expired token"))
			return
		}

		// ValidateToken already rejected tokens without a numeric subject
		id, _ := claims.UserID()
		c.Set(principalKey, Principal{
			ID:      id,
			Account: claims.Account,
			Role:    claims.Role,
			Token:   tokenString,
		})
		c.Set("user_id", id)
		c.Next()
	}
}

// RoleMiddleware must run after JWTAuthMiddleware.
func RoleMiddleware(required utils.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			utils.HandleServiceError(c, utils.ErrNotAuthenticated)
			return
		}
		if p.Role != required {
			if required == utils.RoleAdmin {
				utils.HandleServiceError(c, utils.ErrAdminOnly)
			} else {
				utils.HandleServiceError(c, utils.ErrMemberOnly)
			}
			return
		}
		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
