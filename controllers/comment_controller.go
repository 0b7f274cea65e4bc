package controllers

import (
	"net/http"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

type CreateCommentRequest struct {
	Text             string `json:"text" binding:"required,max=1000"`
	ParentCommentID  *uint  `json:"parent_comment_id"`
	ReplyToCommentID *uint  `json:"reply_to_comment_id"`
}

// CommentDetail is a Comment with its read-time derived fields.
type CommentDetail struct {
	models.Comment
	LikesCount             int64   `json:"likes_count"`
	Liked                  bool    `json:"liked"`
	RepliesCount           int64   `json:"replies_count"`
	ParentCommentUsername  *string `json:"parent_comment_username"`
	ReplyToCommentUsername *string `json:"reply_to_comment_username"`
}

const commentDetailSelect = `
	comments.*,
	(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS likes_count,
	EXISTS(SELECT 1 FROM comment_likes WHERE comment_likes.comment_id = comments.id AND comment_likes.profile_id = ?) AS liked,
	(SELECT COUNT(*) FROM comments AS replies WHERE replies.parent_comment_id = comments.id) AS replies_count,
	(SELECT profiles.username FROM comments AS parents JOIN profiles ON profiles.id = parents.profile_id WHERE parents.id = comments.parent_comment_id) AS parent_comment_username,
	(SELECT profiles.username FROM comments AS targets JOIN profiles ON profiles.id = targets.profile_id WHERE targets.id = comments.reply_to_comment_id) AS reply_to_comment_username`

func (cc *CommentController) selectCommentDetails(viewerProfileID uint) *gorm.DB {
	return cc.DB.Model(&models.Comment{}).Select(commentDetailSelect, viewerProfileID)
}

func (cc *CommentController) attachCommentProfiles(comments []CommentDetail) error {
	if len(comments) == 0 {
		return nil
	}
	profileIDs := make([]uint, 0, len(comments))
	for _, comment := range comments {
		profileIDs = append(profileIDs, comment.ProfileID)
	}
	var profiles []models.Profile
	if err := cc.DB.Preload("Image").Where("id IN ?", profileIDs).Find(&profiles).Error; err != nil {
		return err
	}
	profilesByID := make(map[uint]models.Profile, len(profiles))
	for _, profile := range profiles {
		profilesByID[profile.ID] = profile
	}
	for i := range comments {
		comments[i].Profile = profilesByID[comments[i].ProfileID]
	}
	return nil
}

// CreateComment adds a comment (or reply) to a post.
func (cc *CommentController) CreateComment(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	var post models.Post
	if err := cc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParentCommentID != nil {
		var parent models.Comment
		if err := cc.DB.First(&parent, *req.ParentCommentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment not found"})
			return
		}
		if parent.PostID != post.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment does not belong to this post"})
			return
		}
	}

	comment := models.Comment{
		Text:             req.Text,
		ProfileID:        profile.ID,
		PostID:           post.ID,
		ParentCommentID:  req.ParentCommentID,
		ReplyToCommentID: req.ReplyToCommentID,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	var details []CommentDetail
	if err := cc.selectCommentDetails(profile.ID).Where("comments.id = ?", comment.ID).Find(&details).Error; err != nil || len(details) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching created comment"})
		return
	}
	if err := cc.attachCommentProfiles(details); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching created comment"})
		return
	}

	c.JSON(http.StatusCreated, details[0])
}

// ListPostComments lists a post's top level comments, newest first.
func (cc *CommentController) ListPostComments(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	page := utils.ParsePage(c, utils.PageSizePostComments)

	base := cc.DB.Model(&models.Comment{}).
		Where("comments.post_id = ? AND comments.parent_comment_id IS NULL", postID)

	var total int64
	base.Count(&total)

	var comments []CommentDetail
	err := cc.selectCommentDetails(profile.ID).
		Where("comments.post_id = ? AND comments.parent_comment_id IS NULL", postID).
		Order("comments.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	if err := cc.attachCommentProfiles(comments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": comments,
		"pagination": PaginationMeta{
			CurrentPage: page.Number,
			PageSize:    page.Size,
			TotalItems:  total,
			TotalPages:  page.TotalPages(total),
		},
	})
}

// ListCommentReplies lists replies to a comment, oldest first.
func (cc *CommentController) ListCommentReplies(c *gin.Context) {
	profile := utils.GetProfile(c)
	commentID := c.Param("id")

	page := utils.ParsePage(c, utils.PageSizeCommentReplies)

	base := cc.DB.Model(&models.Comment{}).
		Where("comments.parent_comment_id = ?", commentID)

	var total int64
	base.Count(&total)

	var replies []CommentDetail
	err := cc.selectCommentDetails(profile.ID).
		Where("comments.parent_comment_id = ?", commentID).
		Order("comments.created_at ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&replies).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching replies"})
		return
	}

	if err := cc.attachCommentProfiles(replies); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching replies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": replies,
		"pagination": PaginationMeta{
			CurrentPage: page.Number,
			PageSize:    page.Size,
			TotalItems:  total,
			TotalPages:  page.TotalPages(total),
		},
	})
}
