package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-advising-api/internal/session"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
	"github.com/noah-isme/course-advising-api/pkg/response"
)

// ContextPrincipalKey is the gin context key storing the verified session principal.
const ContextPrincipalKey = "sessionPrincipal"

// Session protects routes by requiring a bearer session token the verifier accepts.
// A missing header, a non-Bearer scheme and an empty token are rejected alike
// before the verifier is consulted.
func Session(verifier session.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Session.
func PrincipalFrom(c *gin.Context) (*session.Principal, bool) {
	value, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*session.Principal)
	return principal, ok && principal != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
