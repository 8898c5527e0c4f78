package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Middleware extracts the Bearer credential, resolves it and stores the
// identity on the request context. Missing and invalid credentials are
// both rejected before any order lookup happens, with distinct messages.
func Middleware(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingCredential.Error()})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		ident, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingCredential):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingCredential.Error()})
			case errors.Is(err, ErrInvalidCredential):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredential.Error()})
			default:
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": ErrUnavailable.Error()})
			}
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// FromContext returns the identity stored by Middleware.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}
