package utils

import (
	"github.com/brandondykun/onlypaws-api/models"
	"github.com/gin-gonic/gin"
)

// UserClaims are the decoded JWT claims for the authenticated user.
type UserClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}

type contextKey string

const (
	UserContextKey    contextKey = "user"
	ProfileContextKey contextKey = "current_profile"
)

// GetUser returns the authenticated user's claims, or nil if the request
// did not pass the auth middleware.
func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if claims, ok := user.(*UserClaims); ok {
		return claims
	}
	return nil
}

// GetProfile returns the acting profile resolved from the auth-profile-id
// header, or nil on routes that don't require one.
func GetProfile(c *gin.Context) *models.Profile {
	profile, exists := c.Get(string(ProfileContextKey))
	if !exists {
		return nil
	}
	if p, ok := profile.(*models.Profile); ok {
		return p
	}
	return nil
}
