package services

import (
	"fmt"
	"testing"

	"pinhub/internal/db"
	"pinhub/internal/models"
	"pinhub/internal/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps db.DB for a fresh in-memory sqlite database. The
// cache=shared DSN keeps the database alive across pooled connections;
// a per-test name isolates tests from each other.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb

	// Explore lists are cached across calls; stale entries from another
	// test would leak through.
	utils.GetCache().Delete(exploreCacheKey)
}

func createTestUser(t *testing.T, name, email string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		EmailConfirmed: true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestPin(t *testing.T, userID uint, title string) *models.Pin {
	t.Helper()

	pin := models.Pin{
		UserID:    userID,
		Title:     title,
		Category:  "general",
		ImagePath: "/uploads/" + title + ".jpg",
	}
	if err := db.DB.Create(&pin).Error; err != nil {
		t.Fatalf("failed to create test pin: %v", err)
	}
	return &pin
}

func createTestBoard(t *testing.T, userID uint, title string) *models.Board {
	t.Helper()

	board := models.Board{UserID: userID, Title: title}
	if err := db.DB.Create(&board).Error; err != nil {
		t.Fatalf("failed to create test board: %v", err)
	}
	return &board
}
