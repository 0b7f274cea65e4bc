package routes

import (
	"github.com/brandondykun/onlypaws-api/controllers"
	"github.com/brandondykun/onlypaws-api/middleware"
	"github.com/brandondykun/onlypaws-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	mail := services.NewMailService()

	// Initialize controllers
	authController := controllers.NewAuthController(db, mail)
	accountController := controllers.NewAccountController(db, mail)
	profileController := controllers.NewProfileController(db)
	uploadController := controllers.NewUploadController(db)
	postController := controllers.NewPostController(db, uploadController)
	feedController := controllers.NewFeedController(db)
	commentController := controllers.NewCommentController(db)
	interactionController := controllers.NewInteractionController(db)
	reportController := controllers.NewReportController(db)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)
		public.POST("/auth/token/refresh", authController.RefreshToken)
		public.POST("/auth/google", authController.GoogleLogin)
		public.POST("/auth/password-reset", accountController.RequestPasswordReset)
		public.POST("/auth/password-reset/confirm", accountController.ResetPassword)
	}

	// Routes that need a valid access token but not an acting profile
	authed := r.Group("/api/v1")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/auth/logout", authController.Logout)
		authed.GET("/account", accountController.MyInfo)
		authed.POST("/account/change-password", accountController.ChangePassword)
		authed.POST("/account/verify-email", accountController.VerifyEmail)
		authed.POST("/account/verify-email/resend", accountController.ResendVerifyEmailToken)
		authed.POST("/account/email-change", accountController.RequestEmailChange)
		authed.POST("/account/email-change/confirm", accountController.VerifyEmailChange)
		authed.POST("/profiles", profileController.CreateProfile)
		authed.GET("/pet-types", profileController.ListPetTypes)
	}

	// Routes acting as a specific profile, selected by header
	protected := r.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(), middleware.ProfileMiddleware(db))
	{
		SetupProfileRoutes(protected, profileController, postController, interactionController)
		SetupPostRoutes(protected, postController, commentController, interactionController, reportController)
		SetupFeedRoutes(protected, feedController)
		SetupCommentRoutes(protected, commentController, interactionController)
		SetupReportRoutes(protected, reportController)
		SetupUploadRoutes(protected, uploadController)
	}
}
