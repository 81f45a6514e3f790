package micropost_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"microblog-service/internal/micropost"
	"microblog-service/internal/migrate"
	"microblog-service/internal/shared/apperr"
	"microblog-service/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) (micropost.Repository, *util.StubClock) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrateAll(db))

	clock := util.NewStubClock()
	return micropost.NewRepository(db, clock), clock
}

func TestCreateContentBounds(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Create(1, strings.Repeat("a", 141))
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))

	p, err := repo.Create(1, strings.Repeat("a", 140))
	require.NoError(t, err)
	require.Len(t, p.Content, 140)

	_, err = repo.Create(1, "   ")
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))

	_, err = repo.Create(0, "no owner")
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))
}

func TestListByOwnerNewestFirst(t *testing.T) {
	repo, clock := newTestRepo(t)

	p1, err := repo.Create(1, "first")
	require.NoError(t, err)
	clock.Advance(time.Second)
	p2, err := repo.Create(1, "second")
	require.NoError(t, err)

	posts, err := repo.ListByOwner(1, 50, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, p2.ID, posts[0].ID)
	require.Equal(t, p1.ID, posts[1].ID)
}

func TestEqualTimestampsKeepInsertionOrder(t *testing.T) {
	repo, _ := newTestRepo(t)

	p3, err := repo.Create(1, "tie one")
	require.NoError(t, err)
	p4, err := repo.Create(1, "tie two")
	require.NoError(t, err)

	posts, err := repo.ListByOwner(1, 50, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, p3.ID, posts[0].ID)
	require.Equal(t, p4.ID, posts[1].ID)
}

func TestListByOwnersMergesNewestFirst(t *testing.T) {
	repo, clock := newTestRepo(t)

	mine, err := repo.Create(1, "mine")
	require.NoError(t, err)
	clock.Advance(time.Second)
	theirs, err := repo.Create(2, "theirs")
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = repo.Create(3, "unrelated")
	require.NoError(t, err)

	posts, err := repo.ListByOwners([]uint{1, 2}, 50, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, theirs.ID, posts[0].ID)
	require.Equal(t, mine.ID, posts[1].ID)
}

func TestListByOwnersEmptySet(t *testing.T) {
	repo, _ := newTestRepo(t)

	posts, err := repo.ListByOwners(nil, 50, 0)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestDestroyEnforcesOwnership(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := micropost.NewService(repo, nil)

	p, err := svc.Create(1, "hands off")
	require.NoError(t, err)

	err = svc.Destroy(2, p.ID)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	// The post must be intact after the refused destroy.
	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.Equal(t, "hands off", got.Content)

	require.NoError(t, svc.Destroy(1, p.ID))
	_, err = repo.GetByID(p.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDestroyMissingPost(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := micropost.NewService(repo, nil)

	err := svc.Destroy(1, 424242)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
