// Package identity authorizes requests carrying a maze token.
package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextTokenClaims is the key used to store token claims in the Gin context.
	ContextTokenClaims = "tokenClaims"
)

// Authoriz rejects requests without a valid bearer token and stores the
// decoded claims in the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized) // No token found in the header.
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Attach claims to the request context for further use.
		c.Set(ContextTokenClaims, claims)
		c.Next()
	}
}

// Claims returns the claims stored by Authoriz.
func Claims(c *gin.Context) (map[string]interface{}, bool) {
	v, ok := c.Get(ContextTokenClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(map[string]interface{})
	return claims, ok
}
