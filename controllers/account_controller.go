package controllers

import (
	"net/http"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/services"
	"github.com/brandondykun/onlypaws-api/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountController covers the authenticated user's own account: info,
// password changes, and the emailed verification flows.
type AccountController struct {
	DB   *gorm.DB
	Mail *services.MailService
}

func NewAccountController(db *gorm.DB, mail *services.MailService) *AccountController {
	return &AccountController{DB: db, Mail: mail}
}

func (ac *AccountController) MyInfo(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var dbUser models.User
	if err := ac.DB.Preload("Profiles").Preload("Profiles.Image").Preload("Profiles.PetType").First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                dbUser.ID,
		"email":             dbUser.Email,
		"is_email_verified": dbUser.IsEmailVerified,
		"is_staff":          dbUser.IsStaff,
		"profiles":          dbUser.Profiles,
	})
}

func (ac *AccountController) ChangePassword(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(input.OldPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"old_password": []string{"Password incorrect."}})
		return
	}

	if input.OldPassword == input.NewPassword {
		c.JSON(http.StatusBadRequest, gin.H{"new_password": []string{"New password must be different from old password."}})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password. Please try again."})
		return
	}

	if err := ac.DB.Model(&dbUser).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

func (ac *AccountController) VerifyEmail(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification token is required"})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if dbUser.IsEmailVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already verified"})
		return
	}

	var token models.VerifyEmailToken
	if err := ac.DB.Where("user_id = ?", dbUser.ID).First(&token).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No verification token found"})
		return
	}

	if token.Token != input.Token {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
		return
	}

	if token.Expired() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code has expired"})
		return
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&dbUser).Update("is_email_verified", true).Error; err != nil {
			return err
		}
		return tx.Delete(&token).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email successfully verified"})
}

func (ac *AccountController) ResendVerifyEmailToken(c *gin.Context) {
	user := utils.GetUser(c)

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if dbUser.IsEmailVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already verified"})
		return
	}

	code := utils.GenerateVerificationCode()

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", dbUser.ID).Delete(&models.VerifyEmailToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.VerifyEmailToken{UserID: dbUser.ID, Token: code}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification token."})
		return
	}

	ac.Mail.SendVerificationEmail(dbUser.Email, code)

	c.JSON(http.StatusCreated, gin.H{"message": "Verification token sent."})
}

func (ac *AccountController) RequestPasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	// Response never reveals whether the email exists.
	nonRevealing := gin.H{"message": "If a user with this email exists, they will receive a reset code."}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, nonRevealing)
		return
	}

	code := utils.GenerateVerificationCode()

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ResetPasswordToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.ResetPasswordToken{UserID: user.ID, Token: code}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process reset password request."})
		return
	}

	ac.Mail.SendPasswordResetEmail(user.Email, code)

	c.JSON(http.StatusOK, nonRevealing)
}

func (ac *AccountController) ResetPassword(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, token and new password are required"})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		// Don't reveal whether the email exists
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confirmation code"})
		return
	}

	var resetToken models.ResetPasswordToken
	if err := ac.DB.Where("user_id = ? AND token = ?", user.ID, input.Token).First(&resetToken).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confirmation code"})
		return
	}

	if resetToken.Expired() {
		ac.DB.Delete(&resetToken)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has expired"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Delete(&resetToken).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

func (ac *AccountController) RequestEmailChange(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"email": "Invalid email format."}})
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"email": "Email already in use."}})
		return
	}

	code := utils.GenerateVerificationCode()
	pending := models.PendingEmailChange{
		UserID:            user.UserID,
		NewEmail:          input.Email,
		VerificationToken: code,
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.UserID).Delete(&models.PendingEmailChange{}).Error; err != nil {
			return err
		}
		return tx.Create(&pending).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"other": "Failed to process email change request"}})
		return
	}

	if err := ac.Mail.SendEmailChangeCode(input.Email, code); err != nil {
		ac.DB.Delete(&pending)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"other": "Failed to send verification email"}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
}

func (ac *AccountController) VerifyEmailChange(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"token": "Verification token required"}})
		return
	}

	var pending models.PendingEmailChange
	if err := ac.DB.Where("user_id = ? AND verification_token = ?", user.UserID, input.Token).First(&pending).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"token": "Invalid or expired token"}})
		return
	}

	if pending.Expired() {
		ac.DB.Delete(&pending)
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"token": "Verification token has expired"}})
		return
	}

	var dbUser models.User
	if err := ac.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	oldEmail := dbUser.Email

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&dbUser).Update("email", pending.NewEmail).Error; err != nil {
			return err
		}
		return tx.Delete(&pending).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update email"})
		return
	}

	ac.Mail.SendEmailChangedNotice(pending.NewEmail, oldEmail)

	c.JSON(http.StatusOK, gin.H{"message": "Email updated successfully."})
}
