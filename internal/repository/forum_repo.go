package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/db"
)

// ForumRepository stores discussion posts and comments.
type ForumRepository struct {
	db *gorm.DB
}

func NewForumRepository(database *gorm.DB) *ForumRepository {
	return &ForumRepository{db: database}
}

// ListPosts returns posts newest first with author and comment count.
func (r *ForumRepository) ListPosts(ctx context.Context) ([]db.ForumPost, error) {
	var posts []db.ForumPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil || len(posts) == 0 {
		return posts, err
	}

	ids := make([]uint64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	var counts []struct {
		PostID uint64
		N      int64
	}
	err = r.db.WithContext(ctx).
		Model(&db.ForumComment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	byPost := make(map[uint64]int64, len(counts))
	for _, c := range counts {
		byPost[c.PostID] = c.N
	}
	for i := range posts {
		posts[i].CommentsCount = byPost[posts[i].ID]
	}
	return posts, nil
}

// FindPost loads a post with author and comments (oldest first, each with author).
func (r *ForumRepository) FindPost(ctx context.Context, id uint64) (*db.ForumPost, error) {
	var post db.ForumPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Comments.Author").
		Take(&post, id).Error
	if err != nil {
		return nil, err
	}
	post.CommentsCount = int64(len(post.Comments))
	return &post, nil
}

func (r *ForumRepository) CreatePost(ctx context.Context, p *db.ForumPost) error {
	return r.db.WithContext(ctx).Omit("Author", "Comments").Create(p).Error
}

func (r *ForumRepository) CreateComment(ctx context.Context, c *db.ForumComment) error {
	return r.db.WithContext(ctx).Omit("Author").Create(c).Error
}
