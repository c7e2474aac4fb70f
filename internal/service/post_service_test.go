package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
)

func TestCreatePostReturnsEntity(t *testing.T) {
	f := newFixture(t)
	c := f.community(t, "Gophers")
	url := "https://cdn.example.com/a.png"

	p, err := f.posts.CreatePost(context.Background(), CreatePostInput{
		CommunityID: c.ID,
		UserID:      alice,
		Title:       " Hello Go ",
		Category:    "news",
		Description: "ten characters or more",
		MediaURL:    &url,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Hello Go", p.Title)
	assert.Equal(t, c.ID, p.CommunityID)
	require.NotNil(t, p.MediaURL)
	assert.Equal(t, url, *p.MediaURL)
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	f := newFixture(t)
	c := f.community(t, "Gophers")
	f.post(t, c.ID, "Hello")

	_, err := f.posts.CreatePost(context.Background(), CreatePostInput{
		CommunityID: c.ID, UserID: bob, Title: "HELLO", Category: "x", Description: "description",
	})
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestPostTitleNonASCII(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Écoles")
	p := f.post(t, c.ID, "ÉCOLE news")

	got, err := f.posts.GetPostByTitle(ctx, "ÉCOLE news")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = f.posts.CreatePost(ctx, CreatePostInput{
		CommunityID: c.ID, UserID: bob, Title: "ÉCOLE news", Category: "x", Description: "description",
	})
	assert.ErrorIs(t, err, pkg.ErrConflict)

	_, err = f.communities.CreateCommunity(ctx, CreateCommunityInput{UserID: bob, Name: "ÉCOLES"})
	assert.ErrorIs(t, err, pkg.ErrConflict)

	updated, err := f.posts.UpdatePost(ctx, alice, p.ID, UpdatePostInput{
		Title: "école News", Category: "x", Description: "description",
	})
	require.NoError(t, err)
	assert.Equal(t, "école News", updated.Title)
}

func TestCreatePostUnknownCommunity(t *testing.T) {
	f := newFixture(t)
	_, err := f.posts.CreatePost(context.Background(), CreatePostInput{
		CommunityID: "missing", UserID: alice, Title: "t", Category: "c", Description: "d",
	})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestCreatePostWithoutMediaStorage(t *testing.T) {
	f := newFixture(t)
	c := f.community(t, "Gophers")
	_, err := f.posts.CreatePost(context.Background(), CreatePostInput{
		CommunityID: c.ID, UserID: alice, Title: "t", Category: "c", Description: "d",
		Media: bytes.NewReader([]byte("x")),
	})
	assert.ErrorIs(t, err, pkg.ErrUnavailable)
}

func TestCreatePostUploadsMedia(t *testing.T) {
	f := newFixture(t)
	c := f.community(t, "Gophers")
	store := &memStore{}
	posts := NewPostService(f.repos.Posts, f.repos.Communities, NewMediaService(store, "posts", 0, nil))

	p, err := posts.CreatePost(context.Background(), CreatePostInput{
		CommunityID: c.ID, UserID: alice, Title: "pic", Category: "c", Description: "description",
		Media: bytes.NewReader(tinyPNG(t)),
	})
	require.NoError(t, err)
	require.NotNil(t, p.MediaURL)
	require.Len(t, store.objects, 1)
	for key := range store.objects {
		assert.Equal(t, "https://media.test/"+key, *p.MediaURL)
	}
}

func TestGetPostByTitleIgnoresCase(t *testing.T) {
	f := newFixture(t)
	c := f.community(t, "Gophers")
	want := f.post(t, c.ID, "Concurrency Patterns")

	got, err := f.posts.GetPostByTitle(context.Background(), "concurrency PATTERNS")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)

	_, err = f.posts.GetPostByTitle(context.Background(), "nope")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestSearchPostsMatchesTitleOrDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	f.post(t, c.ID, "Generics in Go")
	_, err := f.posts.CreatePost(ctx, CreatePostInput{
		CommunityID: c.ID, UserID: alice, Title: "Other", Category: "c",
		Description: "a note about GENERICS and more",
	})
	require.NoError(t, err)
	f.post(t, c.ID, "Unrelated")

	found, err := f.posts.SearchPosts(ctx, "generics", 1, 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = f.posts.SearchPosts(ctx, "  ", 1, 10)
	assert.ErrorIs(t, err, pkg.ErrInvalid)
}

func TestSearchPostsTreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	c := f.community(t, "Gophers")
	f.post(t, c.ID, "100% done")
	f.post(t, c.ID, "100 done")

	found, err := f.posts.SearchPosts(context.Background(), "100%", 1, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% done", found[0].Title)
}

func TestUpdatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	p := f.post(t, c.ID, "draft")
	url := "https://cdn.example.com/b.png"

	updated, err := f.posts.UpdatePost(ctx, alice, p.ID, UpdatePostInput{
		Title: "final", Category: "news", Description: "rewritten description", MediaURL: &url,
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	require.NotNil(t, updated.MediaURL)

	empty := ""
	cleared, err := f.posts.UpdatePost(ctx, alice, p.ID, UpdatePostInput{
		Title: "final", Category: "news", Description: "rewritten description", MediaURL: &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.MediaURL)
}

func TestUpdatePostErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	p := f.post(t, c.ID, "mine")
	f.post(t, c.ID, "taken")

	_, err := f.posts.UpdatePost(ctx, bob, p.ID, UpdatePostInput{Title: "x", Category: "c", Description: "d"})
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	_, err = f.posts.UpdatePost(ctx, alice, p.ID, UpdatePostInput{Title: "Taken", Category: "c", Description: "d"})
	assert.ErrorIs(t, err, pkg.ErrConflict)

	_, err = f.posts.UpdatePost(ctx, alice, "missing", UpdatePostInput{Title: "x", Category: "c", Description: "d"})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestDeletePostRemovesDependents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	p := f.post(t, c.ID, "doomed")
	cm, err := f.comments.AddComment(ctx, AddCommentInput{PostID: p.ID, UserID: bob, Content: "first"})
	require.NoError(t, err)
	_, err = f.likes.LikePost(ctx, bob, p.ID)
	require.NoError(t, err)
	_, err = f.likes.LikeComment(ctx, alice, cm.ID)
	require.NoError(t, err)

	require.NoError(t, f.posts.DeletePost(ctx, alice, p.ID))

	_, err = f.posts.GetPost(ctx, p.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	ok, err := f.repos.Comments.Exists(ctx, cm.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	n, err := f.repos.Likes.Count(ctx, database.SubjectPost, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = f.repos.Likes.Count(ctx, database.SubjectComment, cm.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, f.posts.DeletePost(ctx, alice, p.ID), pkg.ErrNotFound)
}

func TestDeletePostOnlyByAuthor(t *testing.T) {
	f := newFixture(t)
	c := f.community(t, "Gophers")
	p := f.post(t, c.ID, "mine")

	err := f.posts.DeletePost(context.Background(), bob, p.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}
