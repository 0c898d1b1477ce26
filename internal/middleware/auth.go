package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notely-be/internal/jwt"
)

// AuthMiddleware returns a Gin middleware that requires a valid bearer
// access token and stores the caller's identity in the request context.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"detail": "Authentication credentials were not provided.",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"detail": "Authorization header must be of the form: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1], jwt.TypeAccess)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"detail": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
