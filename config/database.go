package config

import (
	"fmt"
	"log"
	"os"

	"github.com/brandondykun/onlypaws-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type S3Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetS3Config() *S3Config {
	return &S3Config{
		AccountID:       os.Getenv("S3_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("S3_BUCKET_NAME"),
		PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		Region:          "auto",
	}
}

func InitDB() *gorm.DB {
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto Migrate models
	db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PetType{},
		&models.Profile{},
		&models.ProfileImage{},
		&models.Post{},
		&models.PostImage{},
		&models.StagedPostImage{},
		&models.Like{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Follow{},
		&models.SavedPost{},
		&models.ReportReason{},
		&models.PostReport{},
		&models.VerifyEmailToken{},
		&models.ResetPasswordToken{},
		&models.PendingEmailChange{},
	)

	seedReportReasons(db)

	return db
}

// seedReportReasons loads the preset report reasons, keyed on code so
// reruns are no-ops.
func seedReportReasons(db *gorm.DB) {
	for _, reason := range models.SeedReportReasons {
		var existing models.ReportReason
		if err := db.Where("code = ?", reason.Code).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&reason).Error; err != nil {
			log.Printf("Failed to seed report reason %s: %v", reason.Code, err)
		}
	}
}
