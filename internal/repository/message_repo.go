package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/db"
	"github.com/oggyb/mentormatch/internal/utils/pagination"
)

// MessageRepository stores direct messages. Clients poll it; nothing is pushed.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

func (r *MessageRepository) Create(ctx context.Context, m *db.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Thread returns messages between a and b, oldest first.
//
// Behavior:
//   - Only messages with id greater than the cursor's AfterID are returned.
//   - A cursor issued for another conversation fails with pagination.ErrInvalidToken.
//   - At most limit rows; nextToken is set when more rows are waiting.
//   - With no more rows, nextToken still points at the last id so pollers can resume.
//
// Example:
//
//	msgs, next, _ := repo.Thread(ctx, 1, 2, nil, 50)
//	msgs, next, _ = repo.Thread(ctx, 1, 2, next, 50) // poll for newer
func (r *MessageRepository) Thread(
	ctx context.Context,
	a, b uint64,
	paginationToken *string,
	limit int,
) ([]db.Message, *string, error) {
	scope := pagination.PairScope(a, b)
	cursor, err := pagination.Decode(getString(paginationToken), scope)
	if err != nil {
		return nil, nil, err
	}

	var msgs []db.Message
	err = r.db.WithContext(ctx).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))", a, b, b, a).
		Where("id > ?", cursor.AfterID).
		Order("id ASC").
		Limit(limit + 1).
		Find(&msgs).Error
	if err != nil {
		return nil, nil, err
	}

	if len(msgs) > limit {
		msgs = msgs[:limit]
	}

	last := cursor.AfterID
	if len(msgs) > 0 {
		last = msgs[len(msgs)-1].ID
	}
	token, err := pagination.Encode(pagination.Cursor{Scope: scope, AfterID: last})
	if err != nil {
		return nil, nil, err
	}
	return msgs, &token, nil
}

// PartnerIDs returns everyone userID has exchanged a message with.
func (r *MessageRepository) PartnerIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var sentTo, receivedFrom []uint64
	if err := r.db.WithContext(ctx).Model(&db.Message{}).
		Where("sender_id = ?", userID).
		Distinct().
		Pluck("receiver_id", &sentTo).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&db.Message{}).
		Where("receiver_id = ?", userID).
		Distinct().
		Pluck("sender_id", &receivedFrom).Error; err != nil {
		return nil, err
	}
	return MergeIDs(sentTo, receivedFrom), nil
}

// MergeIDs unions id lists preserving first-seen order.
func MergeIDs(lists ...[]uint64) []uint64 {
	seen := make(map[uint64]struct{})
	var out []uint64
	for _, l := range lists {
		for _, id := range l {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
