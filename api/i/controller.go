package i

import "github.com/gin-gonic/gin"

// Controller registers its routes on the versioned API group.
type Controller interface {
	// RegisterPublic adds routes reachable without a maze token.
	RegisterPublic(*gin.RouterGroup)

	// RegisterProtected adds routes behind the authorization middleware.
	RegisterProtected(*gin.RouterGroup)
}
