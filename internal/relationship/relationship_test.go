package relationship_test

import (
	"fmt"
	"testing"

	"microblog-service/internal/migrate"
	"microblog-service/internal/relationship"
	"microblog-service/internal/shared/apperr"
	"microblog-service/internal/user"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestEnv(t *testing.T) (relationship.Repository, *user.User, *user.User) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrateAll(db))

	userRepo := user.NewRepository(db)
	a, err := userRepo.Create(&user.User{Email: gofakeit.Email(), Name: gofakeit.Name()})
	require.NoError(t, err)
	b, err := userRepo.Create(&user.User{Email: gofakeit.Email(), Name: gofakeit.Name()})
	require.NoError(t, err)

	return relationship.NewRepository(db, userRepo), a, b
}

func TestFollowAndIsFollowing(t *testing.T) {
	repo, a, b := newTestEnv(t)

	ok, err := repo.IsFollowing(a.ID, b.ID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Follow(a.ID, b.ID))

	ok, err = repo.IsFollowing(a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// Following is asymmetric.
	ok, err = repo.IsFollowing(b.ID, a.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUnfollowTwiceFails(t *testing.T) {
	repo, a, b := newTestEnv(t)

	require.NoError(t, repo.Follow(a.ID, b.ID))
	require.NoError(t, repo.Unfollow(a.ID, b.ID))

	ok, err := repo.IsFollowing(a.ID, b.ID)
	require.NoError(t, err)
	require.False(t, ok)

	err = repo.Unfollow(a.ID, b.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFollowSelfRejected(t *testing.T) {
	repo, a, _ := newTestEnv(t)

	err := repo.Follow(a.ID, a.ID)
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))
}

func TestFollowDuplicateRejected(t *testing.T) {
	repo, a, b := newTestEnv(t)

	require.NoError(t, repo.Follow(a.ID, b.ID))
	err := repo.Follow(a.ID, b.ID)
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))
}

func TestFollowUnknownTargetRejected(t *testing.T) {
	repo, a, _ := newTestEnv(t)

	err := repo.Follow(a.ID, 99999)
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))
}

func TestFollowedIDs(t *testing.T) {
	repo, a, b := newTestEnv(t)

	ids, err := repo.FollowedIDs(a.ID)
	require.NoError(t, err)
	require.Empty(t, ids)

	require.NoError(t, repo.Follow(a.ID, b.ID))

	ids, err = repo.FollowedIDs(a.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{b.ID}, ids)

	// The followed side sees a follower, not a followee.
	ids, err = repo.FollowedIDs(b.ID)
	require.NoError(t, err)
	require.Empty(t, ids)

	followers, err := repo.ListFollowers(b.ID, 50, 0)
	require.NoError(t, err)
	require.Equal(t, []uint{a.ID}, followers)
}
