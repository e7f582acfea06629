package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/authlend-api/internal/auth"
	"github.com/anyulbade/authlend-api/internal/dto"
)

const claimsKey = "auth.claims"

type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// RequireAdmin admits requests carrying a valid bearer token with the admin
// role.
func RequireAdmin(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		claims, err := v.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			log.Debug().Err(err).Str("ip", c.ClientIP()).Msg("rejected bearer token")
			abort(c, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		if !claims.HasRole(auth.RoleAdmin) {
			abort(c, http.StatusForbidden, "This action is unauthorized.")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.Failure(status, message, nil))
}
