package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/internal/permission"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
	"github.com/noah-isme/course-advising-api/pkg/response"
)

// ContextUserKey is the gin context key storing the resolved *models.User.
const ContextUserKey = "currentUser"

// UserResolver maps a session identity to a registered user.
type UserResolver interface {
	Resolve(ctx context.Context, externalID string) (*models.User, error)
}

// CurrentUser loads the registered user behind the session principal and
// rejects disabled accounts.
func CurrentUser(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), principal.ExternalID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !user.Enabled {
			response.Error(c, appErrors.ErrDisabled)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFrom returns the user stored by CurrentUser.
func UserFrom(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// RequireLevel aborts with 403 unless the current user's role meets required.
func RequireLevel(required permission.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFrom(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !permission.Allows(user.Role, required) {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
