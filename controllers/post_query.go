package controllers

import (
	"github.com/brandondykun/onlypaws-api/models"
	"gorm.io/gorm"
)

// postDetailSelect computes the derived post fields for the requesting
// profile. Placeholders: liked profile id, saved profile id, dismissed
// status, reporter profile id.
const postDetailSelect = `
	posts.*,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count,
	EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.profile_id = ?) AS liked,
	EXISTS(SELECT 1 FROM saved_posts WHERE saved_posts.post_id = posts.id AND saved_posts.profile_id = ?) AS is_saved,
	EXISTS(SELECT 1 FROM post_reports WHERE post_reports.post_id = posts.id AND post_reports.status <> ?) AS is_hidden,
	EXISTS(SELECT 1 FROM post_reports WHERE post_reports.post_id = posts.id AND post_reports.reporter_id = ?) AS is_reported`

// selectPostDetails applies postDetailSelect for the viewer profile.
func selectPostDetails(db *gorm.DB, viewerProfileID uint) *gorm.DB {
	return db.Model(&models.Post{}).Select(postDetailSelect,
		viewerProfileID, viewerProfileID, models.ReportStatusDismissed, viewerProfileID)
}

// attachPostAssociations loads images and author profiles for a page of
// post details in two queries and stitches them onto the results.
func attachPostAssociations(db *gorm.DB, posts []PostDetail) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, 0, len(posts))
	profileIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		profileIDs = append(profileIDs, p.ProfileID)
	}

	var images []models.PostImage
	if err := db.Where("post_id IN ?", postIDs).Order("is_main DESC, id ASC").Find(&images).Error; err != nil {
		return err
	}
	imagesByPost := make(map[uint][]models.PostImage)
	for _, img := range images {
		imagesByPost[img.PostID] = append(imagesByPost[img.PostID], img)
	}

	var profiles []models.Profile
	if err := db.Preload("Image").Preload("PetType").Where("id IN ?", profileIDs).Find(&profiles).Error; err != nil {
		return err
	}
	profilesByID := make(map[uint]models.Profile, len(profiles))
	for _, profile := range profiles {
		profilesByID[profile.ID] = profile
	}

	for i := range posts {
		posts[i].Images = imagesByPost[posts[i].ID]
		if posts[i].Images == nil {
			posts[i].Images = []models.PostImage{}
		}
		posts[i].Profile = profilesByID[posts[i].ProfileID]
	}

	return nil
}
