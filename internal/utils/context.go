package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/types"
)

// CurrentMemberID returns the member id the auth middleware extracted from
// the bearer token.
func CurrentMemberID(ctx *gin.Context) (uint, error) {
	value, exists := ctx.Get(types.ContextMemberIDKey)

	if !exists {
		return 0, fmt.Errorf("member not authenticated")
	}

	memberID, ok := value.(uint)

	if !ok {
		return 0, fmt.Errorf("invalid member id type in context")
	}

	return memberID, nil
}
