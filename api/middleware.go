package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/airportops/internal/auth"
	"github.com/Domenick1991/airportops/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const principalKey = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Employee, error)
}

// Guard carries the authentication and role middleware. Every guarded call
// re-resolves the principal from the store; there is no session cache beyond
// the token's own lifetime.
type Guard struct {
	auth Authenticator
}

func NewGuard(a Authenticator) *Guard {
	return &Guard{auth: a}
}

func (g *Guard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "no token provided"})
			return
		}

		employee, err := g.auth.Authenticate(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			message := "authentication failed"
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				message = "token expired, please log in again"
			case errors.Is(err, auth.ErrTokenInvalid):
				message = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
			return
		}

		c.Set(principalKey, employee)
		c.Next()
	}
}

func (g *Guard) RequireRole(roles ...domain.EmployeeRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		employee := CurrentEmployee(c)
		if employee == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "access denied"})
			return
		}
		for _, role := range roles {
			if employee.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": fmt.Sprintf("access denied: role %s has no permission for this resource", employee.Role),
		})
	}
}

// CurrentEmployee returns the authenticated principal, or nil outside a
// RequireAuth chain.
func CurrentEmployee(c *gin.Context) *domain.Employee {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	employee, _ := value.(*domain.Employee)
	return employee
}

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
