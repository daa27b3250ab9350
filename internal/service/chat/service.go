package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/repository"
	"github.com/oggyb/mentormatch/internal/utils/pagination"
	"github.com/oggyb/mentormatch/internal/validation"
)

// PageSize caps one thread page.
const PageSize = 50

type SendInput struct {
	ReceiverID uint64 `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,max=5000"`
}

// ThreadPage is one poll of a conversation. NextCursor resumes after the last
// message returned, or after the given cursor when nothing new arrived.
type ThreadPage struct {
	Messages   []db.Message `json:"data"`
	NextCursor string       `json:"next_cursor"`
}

type Service struct {
	appCtx   *app.AppContext
	messages *repository.MessageRepository
	users    *repository.UserRepository
	swipes   *repository.SwipeRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		messages: repository.NewMessageRepository(appCtx.DB),
		users:    repository.NewUserRepository(appCtx.DB),
		swipes:   repository.NewSwipeRepository(appCtx.DB),
	}
}

// Conversations lists everyone the user can chat with: message partners
// first, then mutual matches without a message yet.
func (s *Service) Conversations(ctx context.Context, userID uint64) ([]db.User, error) {
	partners, err := s.messages.PartnerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	matched, err := s.swipes.MatchedUserIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matched: %w", err)
	}
	return s.users.ListByIDs(ctx, repository.MergeIDs(partners, matched))
}

// Thread returns messages between userID and otherID after cursor, oldest first.
func (s *Service) Thread(ctx context.Context, userID, otherID uint64, cursor string) (*ThreadPage, error) {
	ok, err := s.users.Exists(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}

	var token *string
	if cursor != "" {
		token = &cursor
	}
	msgs, next, err := s.messages.Thread(ctx, userID, otherID, token, PageSize)
	if errors.Is(err, pagination.ErrInvalidToken) {
		return nil, apperr.Invalid("cursor", "cursor is invalid")
	}
	if err != nil {
		return nil, fmt.Errorf("load thread: %w", err)
	}
	if msgs == nil {
		msgs = []db.Message{}
	}
	return &ThreadPage{Messages: msgs, NextCursor: *next}, nil
}

// Send stores a message from senderID.
func (s *Service) Send(ctx context.Context, senderID uint64, in SendInput) (*db.Message, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if in.ReceiverID == senderID {
		return nil, apperr.Invalid("receiver_id", "you cannot message yourself")
	}
	ok, err := s.users.Exists(ctx, in.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Invalid("receiver_id", "the selected receiver_id is invalid")
	}

	m := &db.Message{SenderID: senderID, ReceiverID: in.ReceiverID, Content: in.Content}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return m, nil
}
