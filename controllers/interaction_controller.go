package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InteractionController struct {
	DB *gorm.DB
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	return &InteractionController{DB: db}
}

// LikePost records a like on a post. Liking your own post is rejected.
func (ic *InteractionController) LikePost(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	var post models.Post
	if err := ic.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.ProfileID == profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot like your own post"})
		return
	}

	var existing models.Like
	err := ic.DB.Where("profile_id = ? AND post_id = ?", profile.ID, post.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already liked this post"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error liking post"})
		return
	}

	like := models.Like{ProfileID: profile.ID, PostID: post.ID}
	if err := ic.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error liking post"})
		return
	}

	c.JSON(http.StatusCreated, like)
}

// UnlikePost removes the acting profile's like from a post.
func (ic *InteractionController) UnlikePost(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	result := ic.DB.Where("profile_id = ? AND post_id = ?", profile.ID, postID).Delete(&models.Like{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unliking post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// LikeComment records a like on a comment.
func (ic *InteractionController) LikeComment(c *gin.Context) {
	profile := utils.GetProfile(c)
	commentID := c.Param("id")

	var comment models.Comment
	if err := ic.DB.First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var existing models.CommentLike
	err := ic.DB.Where("profile_id = ? AND comment_id = ?", profile.ID, comment.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already liked this comment"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error liking comment"})
		return
	}

	like := models.CommentLike{ProfileID: profile.ID, CommentID: comment.ID}
	if err := ic.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error liking comment"})
		return
	}

	c.JSON(http.StatusCreated, like)
}

// UnlikeComment removes the acting profile's like from a comment.
func (ic *InteractionController) UnlikeComment(c *gin.Context) {
	profile := utils.GetProfile(c)
	commentID := c.Param("id")

	result := ic.DB.Where("profile_id = ? AND comment_id = ?", profile.ID, commentID).Delete(&models.CommentLike{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unliking comment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// FollowProfile makes the acting profile follow the target profile.
func (ic *InteractionController) FollowProfile(c *gin.Context) {
	profile := utils.GetProfile(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile ID"})
		return
	}

	if uint(targetID) == profile.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
		return
	}

	var target models.Profile
	if err := ic.DB.First(&target, targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var existing models.Follow
	err = ic.DB.Where("followed_id = ? AND followed_by_id = ?", target.ID, profile.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are already following this profile"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error following profile"})
		return
	}

	follow := models.Follow{FollowedID: target.ID, FollowedByID: profile.ID}
	if err := ic.DB.Create(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error following profile"})
		return
	}

	c.JSON(http.StatusCreated, follow)
}

// UnfollowProfile removes the acting profile's follow of the target.
func (ic *InteractionController) UnfollowProfile(c *gin.Context) {
	profile := utils.GetProfile(c)
	targetID := c.Param("id")

	result := ic.DB.Where("followed_id = ? AND followed_by_id = ?", targetID, profile.ID).Delete(&models.Follow{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unfollowing profile"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Follow not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// followListProfile is a profile row in a followers/following list.
type followListProfile struct {
	models.Profile
	IsFollowing bool `json:"is_following"`
}

func (ic *InteractionController) listFollowProfiles(c *gin.Context, joinClause string, profileID string) {
	profile := utils.GetProfile(c)
	page := utils.ParsePage(c, utils.PageSizeFollowList)

	base := ic.DB.Model(&models.Profile{}).Joins(joinClause, profileID)

	if username := c.Query("username"); username != "" {
		base = base.Where("profiles.username ILIKE ?", "%"+username+"%")
	}

	var total int64
	base.Session(&gorm.Session{}).Count(&total)

	var profiles []followListProfile
	err := base.Session(&gorm.Session{}).
		Select(`profiles.*,
			EXISTS(SELECT 1 FROM follows AS self_follows
				WHERE self_follows.followed_id = profiles.id
				AND self_follows.followed_by_id = ?) AS is_following`, profile.ID).
		Order("profiles.username ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&profiles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching profiles"})
		return
	}

	if len(profiles) > 0 {
		profileIDs := make([]uint, 0, len(profiles))
		for _, p := range profiles {
			profileIDs = append(profileIDs, p.ID)
		}
		var images []models.ProfileImage
		if err := ic.DB.Where("profile_id IN ?", profileIDs).Find(&images).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching profiles"})
			return
		}
		imagesByProfile := make(map[uint]*models.ProfileImage, len(images))
		for i := range images {
			imagesByProfile[images[i].ProfileID] = &images[i]
		}
		for i := range profiles {
			profiles[i].Image = imagesByProfile[profiles[i].ID]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": profiles,
		"pagination": PaginationMeta{
			CurrentPage: page.Number,
			PageSize:    page.Size,
			TotalItems:  total,
			TotalPages:  page.TotalPages(total),
		},
	})
}

// ListFollowers lists the profiles following the given profile.
func (ic *InteractionController) ListFollowers(c *gin.Context) {
	ic.listFollowProfiles(c,
		"JOIN follows ON follows.followed_by_id = profiles.id AND follows.followed_id = ?",
		c.Param("id"))
}

// ListFollowing lists the profiles the given profile follows.
func (ic *InteractionController) ListFollowing(c *gin.Context) {
	ic.listFollowProfiles(c,
		"JOIN follows ON follows.followed_id = profiles.id AND follows.followed_by_id = ?",
		c.Param("id"))
}

// SavePost bookmarks a post for the acting profile.
func (ic *InteractionController) SavePost(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	var post models.Post
	if err := ic.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.SavedPost
	err := ic.DB.Where("profile_id = ? AND post_id = ?", profile.ID, post.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already saved this post"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving post"})
		return
	}

	saved := models.SavedPost{ProfileID: profile.ID, PostID: post.ID}
	if err := ic.DB.Create(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving post"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// UnsavePost removes a bookmark.
func (ic *InteractionController) UnsavePost(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	result := ic.DB.Where("profile_id = ? AND post_id = ?", profile.ID, postID).Delete(&models.SavedPost{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing saved post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved post not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSavedPosts lists the acting profile's saved posts, most recently saved first.
func (ic *InteractionController) ListSavedPosts(c *gin.Context) {
	profile := utils.GetProfile(c)
	page := utils.ParsePage(c, utils.PageSizeProfilePosts)

	savedFilter := func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN saved_posts ON saved_posts.post_id = posts.id AND saved_posts.profile_id = ?", profile.ID)
	}

	var total int64
	savedFilter(ic.DB.Model(&models.Post{})).Count(&total)

	var posts []PostDetail
	err := savedFilter(selectPostDetails(ic.DB, profile.ID)).
		Order("saved_posts.saved_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching saved posts"})
		return
	}

	if err := attachPostAssociations(ic.DB, posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching saved posts"})
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
