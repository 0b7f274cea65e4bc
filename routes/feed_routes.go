package routes

import (
	"github.com/brandondykun/onlypaws-api/controllers"
	"github.com/gin-gonic/gin"
)

func SetupFeedRoutes(protected *gin.RouterGroup, feedController *controllers.FeedController) {
	protected.GET("/feed", feedController.GetFeed)
	protected.GET("/explore", feedController.GetExplore)
	protected.GET("/posts/:id/similar", feedController.GetSimilarPosts)
}
