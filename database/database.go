package database

import (
	"fmt"
	"log"
	"os"

	"church-app/internal/domain/announcements"
	"church-app/internal/domain/chat"
	"church-app/internal/domain/donations"
	"church-app/internal/domain/lives"
	"church-app/internal/domain/prayers"
	"church-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// identity
		&users.User{},
		&users.VerificationToken{},

		// resources
		&donations.Donation{},
		&announcements.Announcement{},
		&chat.Message{},
		&prayers.PrayerRequest{},
		&lives.LiveStream{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
