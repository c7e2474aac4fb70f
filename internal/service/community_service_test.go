package service

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

const (
	alice = "0b6a3f1e-8f0f-4c3a-9a41-7d1b7f2a0001"
	bob   = "0b6a3f1e-8f0f-4c3a-9a41-7d1b7f2a0002"
)

type fixture struct {
	repos       testutil.Repos
	communities *CommunityService
	posts       *PostService
	comments    *CommentService
	likes       *LikeService
	events      *EventService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := testutil.NewRepos(testutil.NewDB(t))
	return &fixture{
		repos:       repos,
		communities: NewCommunityService(repos.Communities, repos.Posts, repos.Events),
		posts:       NewPostService(repos.Posts, repos.Communities, nil),
		comments:    NewCommentService(repos.Comments, repos.Posts),
		likes:       NewLikeService(repos.Likes, repos.Posts, repos.Comments, nil, nil),
		events:      NewEventService(repos.Events, repos.Communities),
	}
}

func (f *fixture) community(t *testing.T, name string) *model.Community {
	t.Helper()
	c, err := f.communities.CreateCommunity(context.Background(), CreateCommunityInput{UserID: alice, Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) post(t *testing.T, communityID, title string) *model.Post {
	t.Helper()
	p, err := f.posts.CreatePost(context.Background(), CreatePostInput{
		CommunityID: communityID,
		UserID:      alice,
		Title:       title,
		Category:    "general",
		Description: "a description long enough",
	})
	require.NoError(t, err)
	return p
}

func TestCreateCommunity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	desc := "all things gophers"

	c, err := f.communities.CreateCommunity(ctx, CreateCommunityInput{UserID: alice, Name: "  Gophers ", Description: &desc})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Gophers", c.Name)
	require.NotNil(t, c.Description)
	assert.Equal(t, desc, *c.Description)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := f.communities.GetCommunity(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, got.Name)
}

func TestCreateCommunityDuplicateNameIgnoresCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.community(t, "Gophers")

	_, err := f.communities.CreateCommunity(ctx, CreateCommunityInput{UserID: bob, Name: "gOPHERS"})
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestCreateCommunityRequiresName(t *testing.T) {
	f := newFixture(t)
	_, err := f.communities.CreateCommunity(context.Background(), CreateCommunityInput{UserID: alice, Name: "   "})
	assert.ErrorIs(t, err, pkg.ErrInvalid)
}

func TestGetCommunityNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.communities.GetCommunity(context.Background(), "missing")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestListCommunitiesPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		f.community(t, name)
	}

	first, err := f.communities.ListCommunities(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := f.communities.ListCommunities(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestDeleteCommunityRemovesContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	p := f.post(t, c.ID, "hello")
	cm, err := f.comments.AddComment(ctx, AddCommentInput{PostID: p.ID, UserID: bob, Content: "hi"})
	require.NoError(t, err)
	_, err = f.likes.LikeComment(ctx, bob, cm.ID)
	require.NoError(t, err)
	_, err = f.events.CreateEvent(ctx, CreateEventInput{CommunityID: c.ID, UserID: alice, Title: "meetup", StartsAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	require.NoError(t, f.communities.DeleteCommunity(ctx, "", c.ID))

	_, err = f.communities.GetCommunity(ctx, c.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	_, err = f.posts.GetPost(ctx, p.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	n, err := f.repos.Likes.Count(ctx, database.SubjectComment, cm.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	events, err := f.events.ListEvents(ctx, ListEventsInput{CommunityID: c.ID})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDeleteCommunityOnlyByCreator(t *testing.T) {
	f := newFixture(t)
	c := f.community(t, "Gophers")

	err := f.communities.DeleteCommunity(context.Background(), bob, c.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}

func TestListCommunityPostsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"old", "mid", "new"} {
		require.NoError(t, f.repos.Posts.Create(ctx, &model.Post{
			CommunityID: c.ID,
			UserID:      alice,
			Title:       title,
			Category:    "general",
			Description: "description",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	posts, err := f.communities.ListCommunityPosts(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "new", posts[0].Title)
	assert.Equal(t, "old", posts[2].Title)

	_, err = f.communities.ListCommunityPosts(ctx, "missing")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
