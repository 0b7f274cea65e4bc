package controllers

import (
	"net/http"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
	"github.com/brandondykun/onlypaws-api/visibility"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FeedController assembles the feed, explore, and similar listings by
// composing the follow graph with the visibility rules.
type FeedController struct {
	DB *gorm.DB
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db}
}

func (fc *FeedController) paginatedPosts(c *gin.Context, viewerProfileID uint, page utils.Page, apply func(db *gorm.DB) *gorm.DB) {
	var total int64
	apply(fc.DB.Model(&models.Post{})).Count(&total)

	var posts []PostDetail
	err := apply(selectPostDetails(fc.DB, viewerProfileID)).
		Order("posts.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	if err := attachPostAssociations(fc.DB, posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
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

// GetFeed lists posts from profiles the acting profile follows, newest
// first, with reported-inappropriate posts filtered out.
func (fc *FeedController) GetFeed(c *gin.Context) {
	profile := utils.GetProfile(c)
	page := utils.ParsePage(c, utils.PageSizeFeed)

	fc.paginatedPosts(c, profile.ID, page, func(db *gorm.DB) *gorm.DB {
		return db.
			Where(`posts.profile_id IN (
				SELECT followed_id FROM follows WHERE followed_by_id = ?
			)`, profile.ID).
			Scopes(visibility.FeedScope)
	})
}

// GetExplore lists posts from profiles the acting profile does not
// follow, newest first. Posts from any profile owned by the viewer's
// user are excluded, not just the acting profile's own. Explore hides
// posts with a live report of any reason.
func (fc *FeedController) GetExplore(c *gin.Context) {
	profile := utils.GetProfile(c)
	page := utils.ParsePage(c, utils.PageSizeExplore)

	fc.paginatedPosts(c, profile.ID, page, func(db *gorm.DB) *gorm.DB {
		return db.
			Where(`posts.profile_id NOT IN (
				SELECT followed_id FROM follows WHERE followed_by_id = ?
			)`, profile.ID).
			Where(`posts.profile_id NOT IN (
				SELECT id FROM profiles WHERE user_id = ?
			)`, profile.UserID).
			Scopes(visibility.ExploreScope)
	})
}

// GetSimilarPosts lists explore posts similar to a given post. The
// selection (posts with a greater id, not the viewer's own) is a
// deterministic placeholder for a real similarity signal; it keeps the
// contract of a paginated listing that excludes hidden and own posts.
func (fc *FeedController) GetSimilarPosts(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	var pivot models.Post
	if err := fc.DB.First(&pivot, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	page := utils.ParsePage(c, utils.PageSizeSimilar)

	fc.paginatedPosts(c, profile.ID, page, func(db *gorm.DB) *gorm.DB {
		return db.
			Where("posts.id > ?", pivot.ID).
			Where("posts.profile_id <> ?", profile.ID).
			Scopes(visibility.FeedScope)
	})
}
