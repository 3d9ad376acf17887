package middleware

import (
	"net/http"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const identityKey = "identity"

type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// Auth guards a route group. The Authorization header carries the raw token,
// without a scheme prefix.
func Auth(verifier TokenVerifier, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := c.GetHeader("Authorization")
		if rawToken == "" {
			log.Warn("Middleware: Authorization header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		identity, err := verifier.Verify(rawToken)
		if err != nil {
			log.Warnf("Middleware: Token rejected: %v", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		log.Debugf("Middleware: Authenticated %s (role %s)", identity.Username, identity.Role)
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity Auth attached to the request.
func IdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
