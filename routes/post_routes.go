package routes

import (
	"github.com/brandondykun/onlypaws-api/controllers"
	"github.com/gin-gonic/gin"
)

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController, commentController *controllers.CommentController, interactionController *controllers.InteractionController, reportController *controllers.ReportController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.GET("/saved", interactionController.ListSavedPosts)
		posts.GET("/:id", postController.GetPost)
		posts.DELETE("/:id", postController.DeletePost)

		posts.POST("/:id/likes", interactionController.LikePost)
		posts.DELETE("/:id/likes", interactionController.UnlikePost)
		posts.POST("/:id/save", interactionController.SavePost)
		posts.DELETE("/:id/save", interactionController.UnsavePost)

		posts.POST("/:id/comments", commentController.CreateComment)
		posts.GET("/:id/comments", commentController.ListPostComments)

		posts.POST("/:id/reports", reportController.CreateReport)
	}
}
