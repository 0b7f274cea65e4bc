package routes

import (
	"github.com/brandondykun/onlypaws-api/controllers"
	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := protected.Group("/reports")
	{
		reports.GET("/reasons", reportController.ListReportReasons)
		reports.GET("", reportController.MyReports)

		// Staff moderation surface
		reports.GET("/all", reportController.ListAllReports)
		reports.GET("/posts", reportController.ListReportedPosts)
		reports.PUT("/:id/resolve", reportController.ResolveReport)
	}
}
