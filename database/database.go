package database

import (
	"fmt"
	"log"
	"os"

	"freelancer-access/internal/domain/content"
	"freelancer-access/internal/domain/users"
	"freelancer-access/internal/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// accounts
		&users.User{},

		// content graph
		&content.Content{},
		&content.Term{},

		// access control
		&store.ContentGrant{},
		&store.UserSchedule{},
		&store.AccessSetting{},
		&store.AccessTemplate{},
		&store.AccessLogEntry{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}
