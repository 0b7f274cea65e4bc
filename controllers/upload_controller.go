package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/brandondykun/onlypaws-api/config"
	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Images are uploaded directly to object storage via presigned PUT
// URLs. Post images land under a staged prefix keyed by the client's
// post UUID and are moved to their permanent key when the post is
// created.
type UploadController struct {
	DB       *gorm.DB
	S3Client *s3.Client
	S3Config *config.S3Config
}

func NewUploadController(db *gorm.DB) *UploadController {
	s3Config := config.GetS3Config()

	s3Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s3Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			s3Config.AccessKeyID,
			s3Config.SecretAccessKey,
			"",
		),
		Region: s3Config.Region,
	})

	return &UploadController{
		DB:       db,
		S3Client: s3Client,
		S3Config: s3Config,
	}
}

type StagedImageURLRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required"`
	PostUUID    string `json:"post_uuid" binding:"required,uuid"`
}

type ProfileImageURLRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required"`
}

type ProfileImageConfirmRequest struct {
	Key string `json:"key" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

const maxPostImagesPerUpload = 8

// GetStagedImageURL presigns an upload for one post image and records
// it as staged under the client's post UUID.
func (uc *UploadController) GetStagedImageURL(c *gin.Context) {
	user := utils.GetUser(c)
	profile := utils.GetProfile(c)

	var req StagedImageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}
	if !isValidImageSize(req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	var stagedCount int64
	uc.DB.Model(&models.StagedPostImage{}).
		Where("profile_id = ? AND post_uuid = ?", profile.ID, req.PostUUID).
		Count(&stagedCount)
	if stagedCount >= maxPostImagesPerUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Maximum %d images allowed per post", maxPostImagesPerUpload)})
		return
	}

	ext := filepath.Ext(req.FileName)
	key := fmt.Sprintf("images/%d/%d/staged/%s/%s%s", user.UserID, profile.ID, req.PostUUID, uuid.New().String(), ext)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	fileURL := fmt.Sprintf("%s/%s", uc.S3Config.PublicURL, key)

	staged := models.StagedPostImage{
		ProfileID: profile.ID,
		PostUUID:  req.PostUUID,
		Key:       key,
		URL:       fileURL,
	}
	if err := uc.DB.Create(&staged).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stage image"})
		return
	}

	c.JSON(http.StatusOK, PresignedURLResponse{
		UploadURL: presignedURL,
		FileURL:   fileURL,
		Key:       key,
		ExpiresIn: 3600,
	})
}

// DeleteStagedImage discards a staged image before the post exists.
func (uc *UploadController) DeleteStagedImage(c *gin.Context) {
	profile := utils.GetProfile(c)
	imageID := c.Param("id")

	var staged models.StagedPostImage
	if err := uc.DB.Where("id = ? AND profile_id = ?", imageID, profile.ID).First(&staged).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staged image not found"})
		return
	}

	if err := uc.DB.Delete(&staged).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staged image"})
		return
	}
	if err := uc.deleteFile(staged.Key); err != nil {
		fmt.Printf("Warning: failed to delete staged object %s: %v\n", staged.Key, err)
	}

	c.Status(http.StatusNoContent)
}

// GetProfileImageURL presigns an upload for the acting profile's image.
func (uc *UploadController) GetProfileImageURL(c *gin.Context) {
	user := utils.GetUser(c)
	profile := utils.GetProfile(c)

	var req ProfileImageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}
	if !isValidImageSize(req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	ext := filepath.Ext(req.FileName)
	key := fmt.Sprintf("images/%d/%d/profile/%s%s", user.UserID, profile.ID, uuid.New().String(), ext)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, PresignedURLResponse{
		UploadURL: presignedURL,
		FileURL:   fmt.Sprintf("%s/%s", uc.S3Config.PublicURL, key),
		Key:       key,
		ExpiresIn: 3600,
	})
}

// ConfirmProfileImage verifies the uploaded object and swaps it in as
// the profile's image, deleting the previous object if there was one.
func (uc *UploadController) ConfirmProfileImage(c *gin.Context) {
	profile := utils.GetProfile(c)

	var req ProfileImageConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expectedPrefix := fmt.Sprintf("images/%d/%d/profile/", profile.UserID, profile.ID)
	if len(req.Key) <= len(expectedPrefix) || req.Key[:len(expectedPrefix)] != expectedPrefix {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image key"})
		return
	}

	exists, err := uc.fileExists(req.Key)
	if err != nil || !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found in storage"})
		return
	}

	var previousKey string
	var image models.ProfileImage
	err = uc.DB.Where("profile_id = ?", profile.ID).First(&image).Error
	switch {
	case err == nil:
		previousKey = image.Key
		image.Key = req.Key
		image.URL = fmt.Sprintf("%s/%s", uc.S3Config.PublicURL, req.Key)
		err = uc.DB.Save(&image).Error
	case err == gorm.ErrRecordNotFound:
		image = models.ProfileImage{
			ProfileID: profile.ID,
			Key:       req.Key,
			URL:       fmt.Sprintf("%s/%s", uc.S3Config.PublicURL, req.Key),
		}
		err = uc.DB.Create(&image).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile image"})
		return
	}

	if previousKey != "" && previousKey != req.Key {
		if err := uc.deleteFile(previousKey); err != nil {
			fmt.Printf("Warning: failed to delete previous profile image %s: %v\n", previousKey, err)
		}
	}

	c.JSON(http.StatusOK, image)
}

func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
	}
	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

func isValidImageSize(fileSize int64) bool {
	return fileSize > 0 && fileSize <= 10*1024*1024
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.S3Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.S3Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) fileExists(key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(uc.S3Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.S3Client.HeadObject(context.TODO(), input)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (uc *UploadController) deleteFile(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(uc.S3Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.S3Client.DeleteObject(context.TODO(), input)
	return err
}

func (uc *UploadController) copyFile(sourceKey, destKey string) error {
	copyInput := &s3.CopyObjectInput{
		Bucket:     aws.String(uc.S3Config.BucketName),
		CopySource: aws.String(fmt.Sprintf("%s/%s", uc.S3Config.BucketName, sourceKey)),
		Key:        aws.String(destKey),
	}

	_, err := uc.S3Client.CopyObject(context.TODO(), copyInput)
	return err
}
