package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdmin gates the fleet-office endpoints. The caller presents
// the admin password as a bearer token and it is checked against the
// bcrypt hash in ADMIN_PASSWORD_HASH. With no hash configured the
// admin surface is disabled outright.
//
// Driver credentials deliberately do not go through bcrypt (they keep
// the plaintext scheme of the existing fleet system); the admin gate
// is the hardened path.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := os.Getenv("ADMIN_PASSWORD_HASH")
		if hash == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access not configured"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		password := strings.TrimPrefix(authHeader, "Bearer ")

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
			return
		}

		c.Next()
	}
}
