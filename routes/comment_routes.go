package routes

import (
	"github.com/brandondykun/onlypaws-api/controllers"
	"github.com/gin-gonic/gin"
)

func SetupCommentRoutes(protected *gin.RouterGroup, commentController *controllers.CommentController, interactionController *controllers.InteractionController) {
	comments := protected.Group("/comments")
	{
		comments.GET("/:id/replies", commentController.ListCommentReplies)
		comments.POST("/:id/likes", interactionController.LikeComment)
		comments.DELETE("/:id/likes", interactionController.UnlikeComment)
	}
}
