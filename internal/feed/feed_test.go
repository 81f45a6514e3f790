package feed_test

import (
	"fmt"
	"testing"
	"time"

	"microblog-service/internal/feed"
	"microblog-service/internal/micropost"
	"microblog-service/internal/migrate"
	"microblog-service/internal/relationship"
	"microblog-service/internal/user"
	"microblog-service/internal/util"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type env struct {
	users user.Repository
	rels  relationship.Repository
	posts micropost.Repository
	feed  feed.Service
	clock *util.StubClock
}

func newTestEnv(t *testing.T) *env {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrateAll(db))

	users := user.NewRepository(db)
	rels := relationship.NewRepository(db, users)
	clock := util.NewStubClock()
	posts := micropost.NewRepository(db, clock)

	return &env{
		users: users,
		rels:  rels,
		posts: posts,
		feed:  feed.NewService(rels, posts),
		clock: clock,
	}
}

func (e *env) newUser(t *testing.T) *user.User {
	u, err := e.users.Create(&user.User{Email: gofakeit.Email(), Name: gofakeit.Name()})
	require.NoError(t, err)
	return u
}

func TestEmptyFeedIsNormal(t *testing.T) {
	e := newTestEnv(t)
	loner := e.newUser(t)

	items, err := e.feed.Home(loner.ID, 50, 0)
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestFeedEqualsOwnPostsWhenFollowingNoOne(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t)

	_, err := e.posts.Create(u.ID, "alpha")
	require.NoError(t, err)
	e.clock.Advance(time.Second)
	_, err = e.posts.Create(u.ID, "beta")
	require.NoError(t, err)

	own, err := e.posts.ListByOwner(u.ID, 50, 0)
	require.NoError(t, err)
	items, err := e.feed.Home(u.ID, 50, 0)
	require.NoError(t, err)
	require.Equal(t, own, items)
}

func TestFeedIncludesFollowedPosts(t *testing.T) {
	e := newTestEnv(t)
	a := e.newUser(t)
	b := e.newUser(t)

	require.NoError(t, e.rels.Follow(a.ID, b.ID))

	_, err := e.posts.Create(b.ID, "from b")
	require.NoError(t, err)
	e.clock.Advance(time.Second)
	_, err = e.posts.Create(a.ID, "from a")
	require.NoError(t, err)

	items, err := e.feed.Home(a.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "from a", items[0].Content)
	require.Equal(t, "from b", items[1].Content)

	// b does not follow a, so b's feed carries only b's post.
	items, err = e.feed.Home(b.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "from b", items[0].Content)
}

func TestFollowPostFeedUnfollowScenario(t *testing.T) {
	e := newTestEnv(t)
	a := e.newUser(t)
	b := e.newUser(t)

	require.NoError(t, e.rels.Follow(a.ID, b.ID))

	hello, err := e.posts.Create(b.ID, "hello")
	require.NoError(t, err)

	items, err := e.feed.Home(a.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, hello.ID, items[0].ID)

	require.NoError(t, e.rels.Unfollow(a.ID, b.ID))

	items, err = e.feed.Home(a.ID, 50, 0)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestFeedPagination(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t)

	for i := 0; i < 5; i++ {
		_, err := e.posts.Create(u.ID, fmt.Sprintf("post %d", i))
		require.NoError(t, err)
		e.clock.Advance(time.Second)
	}

	page1, err := e.feed.Home(u.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.Equal(t, "post 4", page1[0].Content)

	page2, err := e.feed.Home(u.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	require.Equal(t, "post 2", page2[0].Content)
}
