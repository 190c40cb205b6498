package middleware

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmanet/internal/pkg/auth"
	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

// ServiceTokenRequired rejects requests without a valid service token.
// It lets everything through when the verifier is disabled.
func ServiceTokenRequired(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifier.Enabled() {
			c.Next()
			return
		}

		token := strings.TrimSpace(c.GetHeader(auth.TokenHeader))
		if token == "" {
			abortUnauthorized(c, "missing service token")
			return
		}

		if err := verifier.Verify(token); err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				abortUnauthorized(c, auth.ErrInvalidToken.Error())
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: dto.ErrorBody{Code: dto.CodeInternal, Message: "internal error"},
			})
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: dto.ErrorBody{Code: dto.CodeUnauthorized, Message: message},
	})
}
