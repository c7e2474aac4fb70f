package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
	"Content_Service/internal/testutil"
)

func seedPost(t *testing.T, repos testutil.Repos, title string) (*model.Community, *model.Post) {
	t.Helper()
	ctx := context.Background()
	c := &model.Community{Name: "c-" + title, UserID: "u1"}
	require.NoError(t, repos.Communities.Create(ctx, c))
	p := &model.Post{CommunityID: c.ID, UserID: "u1", Title: title, Category: "cat", Description: "description"}
	require.NoError(t, repos.Posts.Create(ctx, p))
	return c, p
}

func TestMigrationsRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	require.NoError(t, database.MigrateDown(ctx, db, "sqlite3", nil))
	assert.True(t, db.Migrator().HasTable("events"))
	require.NoError(t, database.MigrateDown(ctx, db, "sqlite3", nil))
	assert.False(t, db.Migrator().HasTable("posts"))
	require.NoError(t, database.MigrateUp(ctx, db, "sqlite3", nil))
	assert.True(t, db.Migrator().HasTable("posts"))
	assert.NoError(t, database.Ping(ctx, db))
}

func TestCommunityNameUniqueIndex(t *testing.T) {
	repos := testutil.NewRepos(testutil.NewDB(t))
	ctx := context.Background()
	require.NoError(t, repos.Communities.Create(ctx, &model.Community{Name: "Gophers", UserID: "u1"}))

	err := repos.Communities.Create(ctx, &model.Community{Name: "Gophers", UserID: "u2"})
	assert.ErrorIs(t, err, pkg.ErrConflict)

	found, err := repos.Communities.FindByName(ctx, "GOPHERS")
	require.NoError(t, err)
	assert.Equal(t, "Gophers", found.Name)
}

func TestLikeUniquePerUser(t *testing.T) {
	repos := testutil.NewRepos(testutil.NewDB(t))
	ctx := context.Background()
	_, p := seedPost(t, repos, "liked")

	liked, _, err := repos.Likes.TogglePost(ctx, "u2", p.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	ok, err := repos.Likes.IsLiked(ctx, "u2", database.SubjectPost, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second row for the same pair violates the unique index
	id := p.ID
	err = repos.Posts.DB.Create(&model.Like{UserID: "u2", PostID: &id}).Error
	assert.Error(t, err)

	liked, _, err = repos.Likes.TogglePost(ctx, "u2", p.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	ok, err = repos.Likes.IsLiked(ctx, "u2", database.SubjectPost, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostTitleTaken(t *testing.T) {
	repos := testutil.NewRepos(testutil.NewDB(t))
	ctx := context.Background()
	_, p := seedPost(t, repos, "Hello")

	taken, err := repos.Posts.TitleTaken(ctx, "hello", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.Posts.TitleTaken(ctx, "HELLO", p.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestNonASCIITitleAndName(t *testing.T) {
	repos := testutil.NewRepos(testutil.NewDB(t))
	ctx := context.Background()
	c, p := seedPost(t, repos, "ÉCOLE news")

	found, err := repos.Posts.FindByTitle(ctx, "ÉCOLE news")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
	found, err = repos.Posts.FindByTitle(ctx, "école NEWS")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	taken, err := repos.Posts.TitleTaken(ctx, "ÉCOLE news", "")
	require.NoError(t, err)
	assert.True(t, taken)

	dup := &model.Post{CommunityID: c.ID, UserID: "u2", Title: "école news", Category: "cat", Description: "description"}
	assert.ErrorIs(t, repos.Posts.Create(ctx, dup), pkg.ErrConflict)

	require.NoError(t, repos.Posts.Update(ctx, p.ID, map[string]any{"title": "Ångström"}))
	found, err = repos.Posts.FindByTitle(ctx, "ÅNGSTRÖM")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
	_, err = repos.Posts.FindByTitle(ctx, "école news")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	require.NoError(t, repos.Communities.Create(ctx, &model.Community{Name: "Ünicode", UserID: "u1"}))
	err = repos.Communities.Create(ctx, &model.Community{Name: "ünicode", UserID: "u2"})
	assert.ErrorIs(t, err, pkg.ErrConflict)
	byName, err := repos.Communities.FindByName(ctx, "ÜNICODE")
	require.NoError(t, err)
	assert.Equal(t, "Ünicode", byName.Name)
}

func TestOutboxLifecycle(t *testing.T) {
	repos := testutil.NewRepos(testutil.NewDB(t))
	ctx := context.Background()
	_, p := seedPost(t, repos, "outbox")
	_, _, err := repos.Likes.TogglePost(ctx, "u2", p.ID)
	require.NoError(t, err)

	pending, err := repos.Outbox.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, database.EventPostCreated, pending[0].EventType)
	assert.Equal(t, database.EventLikeToggled, pending[1].EventType)

	require.NoError(t, repos.Outbox.MarkFailed(ctx, pending[0].ID))
	require.NoError(t, repos.Outbox.MarkSent(ctx, pending[1].ID))

	pending, err = repos.Outbox.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	n, err := repos.Outbox.Requeue(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "retry already at the limit")

	n, err = repos.Outbox.Requeue(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestEventListFilters(t *testing.T) {
	repos := testutil.NewRepos(testutil.NewDB(t))
	ctx := context.Background()
	c, _ := seedPost(t, repos, "events")
	base := time.Date(2031, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repos.Events.Create(ctx, &model.Event{
			CommunityID: c.ID, UserID: "u1", Title: "e", StartsAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	from := base.Add(30 * time.Minute)
	list, err := repos.Events.List(ctx, database.EventFilter{CommunityID: c.ID, StartsFrom: &from}, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].StartsAt.Before(list[1].StartsAt))

	assert.ErrorIs(t, repos.Events.Delete(ctx, "missing"), pkg.ErrNotFound)
}
