package forum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/repository"
	"github.com/oggyb/mentormatch/internal/validation"
)

type PostInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required,max=10000"`
}

type CommentInput struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type Service struct {
	appCtx *app.AppContext
	forum  *repository.ForumRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx, forum: repository.NewForumRepository(appCtx.DB)}
}

// Posts lists threads newest first with author and comment count.
func (s *Service) Posts(ctx context.Context) ([]db.ForumPost, error) {
	posts, err := s.forum.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Post loads one thread with its comments, oldest comment first.
func (s *Service) Post(ctx context.Context, id uint64) (*db.ForumPost, error) {
	post, err := s.forum.FindPost(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	post.CommentsCount = int64(len(post.Comments))
	return post, nil
}

func (s *Service) CreatePost(ctx context.Context, authorID uint64, in PostInput) (*db.ForumPost, error) {
	in.Title, in.Content = strings.TrimSpace(in.Title), strings.TrimSpace(in.Content)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	post := &db.ForumPost{UserID: authorID, Title: in.Title, Content: in.Content}
	if err := s.forum.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.Post(ctx, post.ID)
}

func (s *Service) CreateComment(ctx context.Context, postID, authorID uint64, in CommentInput) (*db.ForumComment, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if _, err := s.Post(ctx, postID); err != nil {
		return nil, err
	}

	c := &db.ForumComment{PostID: postID, UserID: authorID, Content: in.Content}
	if err := s.forum.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}
