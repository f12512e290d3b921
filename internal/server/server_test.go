package server

import (
	"fmt"
	"testing"

	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestServer builds a Server on an in-memory database with real
// repositories and services.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewServer(testConfig(), db), db
}

func uintStr(id uint) string {
	return fmt.Sprintf("%d", id)
}

// createTestUser inserts a user and returns it with a valid token.
func createTestUser(t *testing.T, srv *Server, db *gorm.DB, name, email string) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Avatar:   models.GravatarURL(email),
	}
	require.NoError(t, db.Create(user).Error)
	token, err := srv.generateToken(user.ID)
	require.NoError(t, err)
	return user, token
}
