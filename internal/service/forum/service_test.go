package forum_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/mentormatch/internal/apptest"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/service/forum"
)

func TestForumFlow(t *testing.T) {
	ctx := context.Background()
	appCtx := apptest.New(t)
	apptest.SeedUsers(t, appCtx.DB, 2)
	svc := forum.NewService(appCtx)

	post, err := svc.CreatePost(ctx, 1, forum.PostInput{Title: "Best Go books?", Content: "Looking for recommendations"})
	require.NoError(t, err)
	require.NotNil(t, post.Author)
	assert.Equal(t, "user1", post.Author.Name)

	_, err = svc.CreateComment(ctx, post.ID, 2, forum.CommentInput{Content: "The Go Programming Language"})
	require.NoError(t, err)

	got, err := svc.Post(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, int64(1), got.CommentsCount)
	assert.Equal(t, "user2", got.Comments[0].Author.Name)

	posts, err := svc.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].CommentsCount)
}

func TestForum_Errors(t *testing.T) {
	ctx := context.Background()
	appCtx := apptest.New(t)
	apptest.SeedUsers(t, appCtx.DB, 1)
	svc := forum.NewService(appCtx)

	_, err := svc.CreatePost(ctx, 1, forum.PostInput{Title: "", Content: "body"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Post(ctx, 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.CreateComment(ctx, 42, 1, forum.CommentInput{Content: "hello?"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
