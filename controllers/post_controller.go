package controllers

import (
	"fmt"
	"net/http"
	"path"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
	"github.com/brandondykun/onlypaws-api/visibility"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostController struct {
	DB      *gorm.DB
	Uploads *UploadController
}

func NewPostController(db *gorm.DB, uploads *UploadController) *PostController {
	return &PostController{DB: db, Uploads: uploads}
}

type CreatePostRequest struct {
	Caption  string `json:"caption" binding:"required,max=128"`
	PostUUID string `json:"post_uuid" binding:"required"`
}

// CreatePost creates a post from previously staged images. The post row,
// its image rows, and the staged row cleanup are one transaction; any
// failure rolls everything back and surfaces the error.
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	profile := utils.GetProfile(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var staged []models.StagedPostImage
	if err := pc.DB.Where("profile_id = ? AND post_uuid = ?", profile.ID, req.PostUUID).
		Order("id ASC").Find(&staged).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating that post."})
		return
	}

	if len(staged) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A post requires at least one image."})
		return
	}

	var post models.Post

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		post = models.Post{
			Caption:   req.Caption,
			ProfileID: profile.ID,
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		for i, img := range staged {
			// Copy, don't move: a rollback must leave the staged
			// objects in place so the request can be retried.
			finalKey := fmt.Sprintf("images/%d/%d/%d/%s", user.UserID, profile.ID, post.ID, path.Base(img.Key))
			if err := pc.Uploads.copyFile(img.Key, finalKey); err != nil {
				return err
			}

			postImage := models.PostImage{
				PostID: post.ID,
				Key:    finalKey,
				URL:    fmt.Sprintf("%s/%s", pc.Uploads.S3Config.PublicURL, finalKey),
				IsMain: i == 0,
			}
			if err := tx.Create(&postImage).Error; err != nil {
				return err
			}

			if err := tx.Delete(&staged[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating that post."})
		return
	}

	// The staged source objects are only removed once the post is
	// committed. A failed delete orphans storage, nothing else.
	for _, img := range staged {
		if err := pc.Uploads.deleteFile(img.Key); err != nil {
			fmt.Printf("Warning: failed to delete staged object %s: %v\n", img.Key, err)
		}
	}

	detail, err := pc.getPostDetail(post.ID, profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching created post"})
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// getPostDetail fetches one post with its derived fields for the viewer.
func (pc *PostController) getPostDetail(postID, viewerProfileID uint) (*PostDetail, error) {
	var details []PostDetail
	err := selectPostDetails(pc.DB, viewerProfileID).
		Where("posts.id = ?", postID).
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	if err := attachPostAssociations(pc.DB, details); err != nil {
		return nil, err
	}
	return &details[0], nil
}

// GetPost returns a single post. The post is always returned regardless
// of report state; is_hidden, is_reported, and the live report previews
// let the client decide what to show.
func (pc *PostController) GetPost(c *gin.Context) {
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	detail, err := pc.getPostDetail(post.ID, profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}

	var reports []models.PostReport
	if err := pc.DB.Preload("Reason").
		Where("post_id = ? AND status <> ?", post.ID, models.ReportStatusDismissed).
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		return
	}

	previews := make([]ReportPreview, 0, len(reports))
	for _, r := range visibility.LiveReports(reports) {
		previews = append(previews, ReportPreview{ID: r.ID, Reason: r.Reason, Status: r.Status})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             detail.ID,
		"caption":        detail.Caption,
		"profile":        detail.Profile,
		"created_at":     detail.CreatedAt,
		"updated_at":     detail.UpdatedAt,
		"images":         detail.Images,
		"likes_count":    detail.LikesCount,
		"comments_count": detail.CommentsCount,
		"liked":          detail.Liked,
		"is_saved":       detail.IsSaved,
		"is_hidden":      detail.IsHidden,
		"is_reported":    detail.IsReported,
		"reports":        previews,
	})
}

// DeletePost removes a post. Both the user and the acting profile must
// own it.
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	profile := utils.GetProfile(c)
	postID := c.Param("id")

	var post models.Post
	if err := pc.DB.Preload("Profile").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.Profile.UserID != user.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requesting user does not own this resource."})
		return
	}

	if post.ProfileID != profile.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requesting profile does not own this resource."})
		return
	}

	var images []models.PostImage
	pc.DB.Where("post_id = ?", post.ID).Find(&images)

	if err := pc.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	// Remove the stored objects after the rows are gone. A failed object
	// delete only orphans storage, never the other way around.
	for _, img := range images {
		if err := pc.Uploads.deleteFile(img.Key); err != nil {
			fmt.Printf("Warning: failed to delete object %s: %v\n", img.Key, err)
		}
	}

	c.Status(http.StatusNoContent)
}

// ListProfilePosts lists a profile's posts newest first. Owners see all
// of their posts; other viewers get reported-inappropriate posts
// filtered out.
func (pc *PostController) ListProfilePosts(c *gin.Context) {
	viewer := utils.GetProfile(c)
	profileID := c.Param("id")

	var profile models.Profile
	if err := pc.DB.First(&profile, profileID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	page := utils.ParsePage(c, utils.PageSizeProfilePosts)

	base := pc.DB.Model(&models.Post{}).
		Where("posts.profile_id = ?", profile.ID).
		Scopes(visibility.ProfilePostsScope(profile.ID, viewer.ID))

	var total int64
	base.Count(&total)

	var posts []PostDetail
	err := selectPostDetails(pc.DB, viewer.ID).
		Where("posts.profile_id = ?", profile.ID).
		Scopes(visibility.ProfilePostsScope(profile.ID, viewer.ID)).
		Order("posts.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	if err := attachPostAssociations(pc.DB, posts); err != nil {
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
