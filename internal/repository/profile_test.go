package repository

import (
	"context"
	"fmt"
	"testing"

	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test", Email: email, Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestProfileUpsertVersioning(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "jane@example.com")

	first, err := repo.Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "Developer",
		Skills: []string{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Developer", first.Status)

	second, err := repo.Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "Senior Developer",
		Skills: []string{"Go", "Rust"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Developer", second.Status)
	assert.Equal(t, first.ID, second.ID)

	var raw models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&raw).Error)
	assert.Equal(t, uint64(1), raw.Version)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProfileEntryOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	jane := seedUser(t, db, "jane@example.com")
	bob := seedUser(t, db, "bob@example.com")
	for _, u := range []*models.User{jane, bob} {
		_, err := repo.Upsert(ctx, &models.Profile{
			UserID: u.ID, Status: "Developer", Skills: []string{"Go"},
		})
		require.NoError(t, err)
	}

	withExp, err := repo.AddExperience(ctx, jane.ID, &models.Experience{
		Title: "Engineer", Company: "Acme",
	})
	require.NoError(t, err)
	require.Len(t, withExp.Experience, 1)
	expID := withExp.Experience[0].ID

	// Bob cannot delete Jane's entry through his own profile
	_, err = repo.DeleteExperience(ctx, bob.ID, expID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// Jane's entry is still there
	profile, err := repo.GetByUserID(ctx, jane.ID)
	require.NoError(t, err)
	assert.Len(t, profile.Experience, 1)

	after, err := repo.DeleteExperience(ctx, jane.ID, expID)
	require.NoError(t, err)
	assert.Empty(t, after.Experience)
}

func TestProfileMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "jane@example.com")

	_, err := repo.GetByUserID(ctx, user.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	_, err = repo.AddExperience(ctx, user.ID, &models.Experience{Title: "x", Company: "y"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestLikeUniqueConstraint(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "jane@example.com")
	post := &models.Post{UserID: user.ID, Text: "hello"}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Like(ctx, post.ID, user.ID))

	// Second insert trips the unique index directly, bypassing the pre-check
	err := repo.Like(ctx, post.ID, user.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeAlreadyLiked, appErr.Code)
}

func TestUnlikeWithoutLike(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "jane@example.com")
	post := &models.Post{UserID: user.ID, Text: "hello"}
	require.NoError(t, repo.Create(ctx, post))

	err := repo.Unlike(ctx, post.ID, user.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotLiked, appErr.Code)
}
