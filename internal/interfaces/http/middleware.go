package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seatbook/seatbook/internal/domain/entity"
)

const actorKey = "actor"

// authMiddleware validates the bearer token and resolves the acting user.
// The actor is re-read from the store on every request so role changes
// take effect immediately.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing bearer token",
			})
			return
		}

		claims, err := s.jwtManager.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "invalid token",
			})
			return
		}

		actor, err := s.services.Auth.Resolve(c.Request.Context(), claims.UserID)
		if err != nil {
			s.logger.Error("Failed to resolve actor", "user_id", claims.UserID, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "unknown user",
			})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// actorFrom returns the actor stored by the auth middleware
func actorFrom(c *gin.Context) entity.Actor {
	actor, _ := c.Get(actorKey)
	a, _ := actor.(entity.Actor)
	return a
}
