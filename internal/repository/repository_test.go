package repository

import (
	"context"
	"fmt"
	"testing"

	"orbit/internal/cache"
	"orbit/internal/database"
	"orbit/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cache.SetClient(nil)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: database.NewGormLogger()})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

// seedUser runs the registration cascade and returns the created user.
func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	repo := NewAccountRepository(db)
	user := &models.User{
		FirstName: "Ada",
		LastName:  "Tester",
		Email:     email,
		Password:  "hashed-password",
	}
	require.NoError(t, repo.Register(context.Background(), user, "", "127.0.0.1", "test-agent"))
	return user
}
