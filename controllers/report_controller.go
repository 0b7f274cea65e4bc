package controllers

import (
	"errors"
	"net/http"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// ListReportReasons returns the active report reasons for the report form.
func (rc *ReportController) ListReportReasons(c *gin.Context) {
	var reasons []models.ReportReason
	if err := rc.DB.Where("is_active = ?", true).Order("id ASC").Find(&reasons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching report reasons"})
		return
	}
	c.JSON(http.StatusOK, reasons)
}

type CreateReportRequest struct {
	ReasonID uint   `json:"reason_id" binding:"required"`
	Details  string `json:"details" binding:"max=1000"`
}

// CreateReport files a report against a post. A profile can report
// a given post at most once.
func (rc *ReportController) CreateReport(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	var post models.Post
	if err := rc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reason models.ReportReason
	if err := rc.DB.Where("id = ? AND is_active = ?", req.ReasonID, true).First(&reason).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report reason"})
		return
	}

	var existing models.PostReport
	err := rc.DB.Where("post_id = ? AND reporter_id = ?", post.ID, profile.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already reported this post"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating report"})
		return
	}

	reporterID := profile.ID
	report := models.PostReport{
		PostID:     post.ID,
		ReporterID: &reporterID,
		ReasonID:   reason.ID,
		Details:    req.Details,
		Status:     models.ReportStatusPending,
	}
	if err := rc.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating report"})
		return
	}
	report.Reason = reason

	c.JSON(http.StatusCreated, report)
}

// MyReports lists the reports filed by the acting profile, newest first.
func (rc *ReportController) MyReports(c *gin.Context) {
	profile := utils.GetProfile(c)
	page := utils.ParsePage(c, utils.PageSizeProfilePosts)

	base := rc.DB.Model(&models.PostReport{}).Where("reporter_id = ?", profile.ID)

	var total int64
	base.Count(&total)

	var reports []models.PostReport
	err := rc.DB.Preload("Reason").
		Where("reporter_id = ?", profile.ID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&reports).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": reports,
		"pagination": PaginationMeta{
			CurrentPage: page.Number,
			PageSize:    page.Size,
			TotalItems:  total,
			TotalPages:  page.TotalPages(total),
		},
	})
}

// ListAllReports lists every report for staff review, optionally
// filtered by status, newest first.
func (rc *ReportController) ListAllReports(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil || !user.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
		return
	}

	page := utils.ParsePage(c, utils.PageSizeProfilePosts)

	base := rc.DB.Model(&models.PostReport{})
	if status := c.Query("status"); status != "" {
		if !models.ValidReportStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		base = base.Where("status = ?", status)
	}

	var total int64
	base.Session(&gorm.Session{}).Count(&total)

	var reports []models.PostReport
	err := base.Session(&gorm.Session{}).
		Preload("Reason").
		Preload("Reporter").
		Preload("ResolvedBy").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&reports).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": reports,
		"pagination": PaginationMeta{
			CurrentPage: page.Number,
			PageSize:    page.Size,
			TotalItems:  total,
			TotalPages:  page.TotalPages(total),
		},
	})
}

// ListReportedPosts lists posts carrying at least one live report,
// for staff review.
func (rc *ReportController) ListReportedPosts(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil || !user.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
		return
	}

	profile := utils.GetProfile(c)
	page := utils.ParsePage(c, utils.PageSizeProfilePosts)

	liveFilter := func(db *gorm.DB) *gorm.DB {
		return db.Where(`EXISTS(
			SELECT 1 FROM post_reports
			WHERE post_reports.post_id = posts.id
			AND post_reports.status <> ?)`, models.ReportStatusDismissed)
	}

	var total int64
	liveFilter(rc.DB.Model(&models.Post{})).Count(&total)

	var posts []PostDetail
	err := liveFilter(selectPostDetails(rc.DB, profile.ID)).
		Order("posts.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reported posts"})
		return
	}

	if err := attachPostAssociations(rc.DB, posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reported posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": posts,
		"pagination": PaginationMeta{
			CurrentPage: page.Number,
			PageSize:    page.Size,
			TotalItems:  total,
			TotalPages:  page.TotalPages(total),
		},
	})
}

type ResolveReportRequest struct {
	Status         string `json:"status" binding:"required"`
	ResolutionNote string `json:"resolution_note" binding:"max=1000"`
}

// ResolveReport updates a report's moderation status. The requested
// status is validated before the report is looked up, so a bad status
// is a 400 even when the report does not exist.
func (rc *ReportController) ResolveReport(c *gin.Context) {
	var req ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidReportStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	user := utils.GetUser(c)
	if user == nil || !user.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
		return
	}

	var report models.PostReport
	if err := rc.DB.First(&report, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	profile := utils.GetProfile(c)
	resolverID := profile.ID

	report.Status = req.Status
	report.ResolutionNote = req.ResolutionNote
	report.ResolvedByID = &resolverID

	if err := rc.DB.Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating report"})
		return
	}

	if err := rc.DB.Preload("Reason").Preload("Reporter").Preload("ResolvedBy").First(&report, report.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
