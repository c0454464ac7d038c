package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/types"
)

// RequireToken validates the bearer token and stores the member id it was
// issued for on the context. It deliberately does not load the member row;
// handlers re-check existence before trusting the identity, so a token for
// a deleted member yields a 404 rather than a 401.
func RequireToken(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		memberID, err := tokens.Validate(parts[1])

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextMemberIDKey, memberID)
		ctx.Next()
	}
}
