package services

import (
	"testing"

	"github.com/docgen/backend/internal/config"
	"github.com/docgen/backend/internal/models"
	"github.com/docgen/backend/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	utils.SetJWTSecret("test-secret-key-for-testing")
}

// newTestDB opens an isolated in-memory sqlite database with the full schema
// migrated. One connection only, so every statement sees the same memory DB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Member{},
		&models.Project{},
		&models.Hashtag{},
		&models.ProjectHashtag{},
		&models.Timeline{},
		&models.Notice{},
		&models.RefreshToken{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:              "test-secret-key-for-testing",
		AccessExpireMinutes: 10,
		RefreshExpireDays:   7,
	}
}

// createMember registers a member directly, bypassing validation.
func createMember(t *testing.T, db *gorm.DB, email, password string) *models.Member {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	member := &models.Member{
		Name:     "tester",
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create member: %v", err)
	}
	return member
}
