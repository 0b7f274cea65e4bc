package controllers

import (
	"net/http"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
	"github.com/brandondykun/onlypaws-api/visibility"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

type CreateProfileRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=32"`
	Name      string `json:"name"`
	About     string `json:"about"`
	Breed     string `json:"breed"`
	PetTypeID *uint  `json:"pet_type_id"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	About     *string `json:"about"`
	Breed     *string `json:"breed"`
	PetTypeID *uint   `json:"pet_type_id"`
}

// CreateProfile adds another pet profile to the authenticated user.
func (pc *ProfileController) CreateProfile(c *gin.Context) {
	user := utils.GetUser(c)

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Profile
	if err := pc.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"username": []string{"A profile with that username already exists."}})
		return
	}

	profile := models.Profile{
		Username:  req.Username,
		Name:      req.Name,
		About:     req.About,
		Breed:     req.Breed,
		PetTypeID: req.PetTypeID,
		UserID:    user.UserID,
	}

	if err := pc.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating profile."})
		return
	}

	pc.DB.Preload("PetType").First(&profile, profile.ID)

	c.JSON(http.StatusCreated, profile)
}

// GetProfile returns a profile with its derived counts. The posts count
// follows the visibility rules: owners see their full count, everyone
// else gets reported-inappropriate posts excluded.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	viewer := utils.GetProfile(c)
	profileID := c.Param("id")

	var profile models.Profile
	if err := pc.DB.Preload("Image").Preload("PetType").First(&profile, profileID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var isFollowing bool
	pc.DB.Model(&models.Follow{}).
		Select("COUNT(*) > 0").
		Where("followed_id = ? AND followed_by_id = ?", profile.ID, viewer.ID).
		Find(&isFollowing)

	var followersCount, followingCount, postsCount int64
	pc.DB.Model(&models.Follow{}).Where("followed_id = ?", profile.ID).Count(&followersCount)
	pc.DB.Model(&models.Follow{}).Where("followed_by_id = ?", profile.ID).Count(&followingCount)

	pc.DB.Model(&models.Post{}).
		Where("posts.profile_id = ?", profile.ID).
		Scopes(visibility.ProfilePostsScope(profile.ID, viewer.ID)).
		Count(&postsCount)

	c.JSON(http.StatusOK, gin.H{
		"id":              profile.ID,
		"username":        profile.Username,
		"name":            profile.Name,
		"about":           profile.About,
		"breed":           profile.Breed,
		"pet_type":        profile.PetType,
		"image":           profile.Image,
		"is_following":    isFollowing,
		"posts_count":     postsCount,
		"followers_count": followersCount,
		"following_count": followingCount,
	})
}

// UpdateProfile partially updates the acting profile. Only the acting
// profile itself can be updated.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	profile := utils.GetProfile(c)
	profileID := c.Param("id")

	var target models.Profile
	if err := pc.DB.First(&target, profileID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if target.ID != profile.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requesting profile does not own this resource."})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.About != nil {
		updates["about"] = *req.About
	}
	if req.Breed != nil {
		updates["breed"] = *req.Breed
	}
	if req.PetTypeID != nil {
		updates["pet_type_id"] = *req.PetTypeID
	}

	if len(updates) > 0 {
		if err := pc.DB.Model(&target).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	pc.DB.Preload("Image").Preload("PetType").First(&target, target.ID)

	c.JSON(http.StatusOK, target)
}

// DeleteProfile removes one of the authenticated user's profiles. The
// last remaining profile cannot be deleted.
func (pc *ProfileController) DeleteProfile(c *gin.Context) {
	user := utils.GetUser(c)
	profileID := c.Param("id")

	var profile models.Profile
	if err := pc.DB.Where("id = ? AND user_id = ?", profileID, user.UserID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found or you don't have permission to delete it"})
		return
	}

	var profileCount int64
	pc.DB.Model(&models.Profile{}).Where("user_id = ?", user.UserID).Count(&profileCount)
	if profileCount <= 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your only profile. At least one profile is required."})
		return
	}

	if err := pc.DB.Delete(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile. Please try again."})
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchProfiles lists profiles whose username contains the search text,
// excluding the searcher, ordered by username.
func (pc *ProfileController) SearchProfiles(c *gin.Context) {
	profile := utils.GetProfile(c)

	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Must include username (for searched profile) query param."})
		return
	}

	page := utils.ParsePage(c, utils.PageSizeProfileSearch)

	query := pc.DB.Model(&models.Profile{}).
		Where("username ILIKE ? AND id <> ?", "%"+username+"%", profile.ID)

	var total int64
	query.Count(&total)

	var results []struct {
		models.Profile
		IsFollowing bool `json:"is_following"`
	}

	err := query.
		Select(`profiles.*,
			EXISTS(SELECT 1 FROM follows WHERE follows.followed_id = profiles.id AND follows.followed_by_id = ?) AS is_following`, profile.ID).
		Order("username ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&results).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error searching profiles"})
		return
	}

	if len(results) > 0 {
		ids := make([]uint, 0, len(results))
		for _, r := range results {
			ids = append(ids, r.ID)
		}
		var images []models.ProfileImage
		pc.DB.Where("profile_id IN ?", ids).Find(&images)
		imagesByProfile := make(map[uint]models.ProfileImage, len(images))
		for _, img := range images {
			imagesByProfile[img.ProfileID] = img
		}
		for i := range results {
			if img, ok := imagesByProfile[results[i].ID]; ok {
				results[i].Image = &img
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"pagination": PaginationMeta{
			CurrentPage: page.Number,
			PageSize:    page.Size,
			TotalItems:  total,
			TotalPages:  page.TotalPages(total),
		},
	})
}

// ListPetTypes returns all pet type options, unpaginated.
func (pc *ProfileController) ListPetTypes(c *gin.Context) {
	var petTypes []models.PetType
	if err := pc.DB.Order("name ASC").Find(&petTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching pet types"})
		return
	}
	c.JSON(http.StatusOK, petTypes)
}
