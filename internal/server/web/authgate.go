// Package web wires the HTTP surface of the server: the gin router, the
// GraphQL endpoint, the image upload/download endpoints and the auth gate.
package web

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkurent/recipebook/internal/server/auth"
)

// AuthGate inspects the Authorization header and attaches the resulting
// identity to the request context. It never rejects a request: requests
// without a valid bearer token simply proceed unauthenticated, and each
// operation decides for itself whether it needs an identity.
func AuthGate(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.Identity{}

		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if userID, ok := auth.VerifyToken(parts[1], secretKey); ok {
					identity = auth.Identity{Verified: true, UserID: userID}
				}
			}
		}

		ctx := auth.WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
