package routes

import (
	"github.com/brandondykun/onlypaws-api/controllers"
	"github.com/gin-gonic/gin"
)

func SetupProfileRoutes(protected *gin.RouterGroup, profileController *controllers.ProfileController, postController *controllers.PostController, interactionController *controllers.InteractionController) {
	profiles := protected.Group("/profiles")
	{
		profiles.GET("/search", profileController.SearchProfiles)
		profiles.GET("/:id", profileController.GetProfile)
		profiles.PATCH("/:id", profileController.UpdateProfile)
		profiles.DELETE("/:id", profileController.DeleteProfile)
		profiles.GET("/:id/posts", postController.ListProfilePosts)
		profiles.POST("/:id/follow", interactionController.FollowProfile)
		profiles.DELETE("/:id/follow", interactionController.UnfollowProfile)
		profiles.GET("/:id/followers", interactionController.ListFollowers)
		profiles.GET("/:id/following", interactionController.ListFollowing)
	}
}
