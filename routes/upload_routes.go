package routes

import (
	"github.com/brandondykun/onlypaws-api/controllers"
	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/post-images", uploadController.GetStagedImageURL)
		uploads.DELETE("/post-images/:id", uploadController.DeleteStagedImage)
		uploads.POST("/profile-image", uploadController.GetProfileImageURL)
		uploads.POST("/profile-image/confirm", uploadController.ConfirmProfileImage)
	}
}
