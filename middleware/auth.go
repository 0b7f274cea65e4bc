package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}

		token := bearerToken[1]
		claims := jwt.MapClaims{}
		parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !parsedToken.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		isStaff, _ := claims["is_staff"].(bool)

		userClaims := &utils.UserClaims{
			UserID:  uint(userID),
			Email:   email,
			IsStaff: isStaff,
		}

		c.Set(string(utils.UserContextKey), userClaims)

		c.Next()
	}
}

// ProfileMiddleware resolves the auth-profile-id header into the acting
// profile and attaches it to the request. The profile must belong to the
// authenticated user. Runs after AuthMiddleware.
func ProfileMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := utils.GetUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			c.Abort()
			return
		}

		profileID := c.GetHeader("auth-profile-id")
		if profileID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Profile ID not provided in headers"})
			c.Abort()
			return
		}

		var profile models.Profile
		if err := db.Where("id = ? AND user_id = ?", profileID, user.UserID).First(&profile).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid profile ID"})
			c.Abort()
			return
		}

		c.Set(string(utils.ProfileContextKey), &profile)

		c.Next()
	}
}
