package matchmaking

import (
	"context"
	"fmt"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/db"
	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/logger"
	"github.com/oggyb/mentormatch/internal/metrics"
	"github.com/oggyb/mentormatch/internal/repository"
	"github.com/oggyb/mentormatch/internal/validation"
)

// CandidateLimit caps one candidate feed page.
const CandidateLimit = 10

const (
	DirectionRight = "right"
	DirectionLeft  = "left"

	MessageRecorded = "Swipe recorded"
	MessageMatched  = "It's a Match!"

	CodeAlreadySwiped = "ALREADY_SWIPED"
)

// SwipeInput is one swipe request from the authenticated actor.
type SwipeInput struct {
	CandidateID uint64 `json:"candidate_id" validate:"required"`
	Direction   string `json:"direction" validate:"required,oneof=right left"`
}

// SwipeResult is the outcome reported to the swiper.
type SwipeResult struct {
	Message string `json:"message"`
	Matched bool   `json:"matched"`
}

func resultFor(matched bool) SwipeResult {
	if matched {
		return SwipeResult{Message: MessageMatched, Matched: true}
	}
	return SwipeResult{Message: MessageRecorded, Matched: false}
}

// Service implements candidate feed, swipe recording, mutual match
// promotion and the matched-pairs listing. Transports (HTTP, gRPC) pass the
// authenticated actor id explicitly.
type Service struct {
	appCtx *app.AppContext
	swipes *repository.SwipeRepository
	users  *repository.UserRepository
}

// NewService creates a new matchmaking service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		swipes: repository.NewSwipeRepository(appCtx.DB),
		users:  repository.NewUserRepository(appCtx.DB),
	}
}

// Candidates returns up to CandidateLimit users the actor has not swiped on.
//
// Behavior:
//   - Never includes the actor.
//   - Never includes anyone the actor swiped on, in either direction.
//   - Read-only; natural id order.
func (s *Service) Candidates(ctx context.Context, actorID uint64) ([]db.User, error) {
	users, err := s.swipes.ListCandidates(ctx, actorID, CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	logger.FromContext(ctx).Debug("candidates listed", "actor", actorID, "count", len(users))
	return users, nil
}

// Swipe records actor's decision on a candidate and promotes a mutual like.
//
// Behavior:
//   - right → liked, left → passed.
//   - Invalid direction, missing/unknown candidate or a self swipe fail
//     validation and write nothing.
//   - A liked swipe whose mirror is still liked promotes both rows to matched
//     in the same transaction; otherwise nothing besides the new row changes.
//   - Swipes on the same pair are serialized by a pair lock, so two
//     simultaneous opposite likes produce exactly one "It's a Match!".
//   - Repeating the stored decision is a no-op that reports the current state.
//     Contradicting it returns a conflict with code ALREADY_SWIPED.
//
// Example:
//
//	svc.Swipe(ctx, 1, SwipeInput{CandidateID: 2, Direction: "right"})
func (s *Service) Swipe(ctx context.Context, actorID uint64, in SwipeInput) (SwipeResult, error) {
	log := logger.FromContext(ctx)

	if err := validation.Struct(&in); err != nil {
		return SwipeResult{}, err
	}
	if in.CandidateID == actorID {
		return SwipeResult{}, apperr.Invalid("candidate_id", "you cannot swipe on yourself")
	}

	exists, err := s.users.Exists(ctx, in.CandidateID)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("check candidate: %w", err)
	}
	if !exists {
		return SwipeResult{}, apperr.Invalid("candidate_id", "the selected candidate_id is invalid")
	}

	status := db.StatusPassed
	if in.Direction == DirectionRight {
		status = db.StatusLiked
	}

	var matched, replay bool
	err = s.swipes.Tx(ctx, func(tx *repository.SwipeRepository) error {
		matched, replay = false, false

		if err := tx.LockPair(ctx, actorID, in.CandidateID); err != nil {
			return err
		}

		existing, err := tx.Find(ctx, actorID, in.CandidateID)
		if err != nil {
			return err
		}
		if existing != nil {
			if !sameDecision(existing.Status, status) {
				return apperr.Conflict(CodeAlreadySwiped, "you have already swiped on this user")
			}
			replay = true
			matched = existing.Status == db.StatusMatched
			return nil
		}

		row, err := tx.Create(ctx, actorID, in.CandidateID, status)
		if err != nil {
			return err
		}
		if status != db.StatusLiked {
			return nil
		}

		mirror, err := tx.FindLiked(ctx, in.CandidateID, actorID)
		if err != nil || mirror == nil {
			return err
		}
		if err := tx.Promote(ctx, row, mirror); err != nil {
			return err
		}
		matched = true
		return nil
	})
	if err != nil {
		log.Warn("swipe failed", "actor", actorID, "candidate", in.CandidateID, "direction", in.Direction, "err", err)
		return SwipeResult{}, err
	}

	if replay {
		log.Debug("swipe replayed", "actor", actorID, "candidate", in.CandidateID, "matched", matched)
		return resultFor(matched), nil
	}

	metrics.RecordSwipe(in.Direction, matched)
	log.Info("swipe recorded", "actor", actorID, "candidate", in.CandidateID, "direction", in.Direction, "matched", matched)
	return resultFor(matched), nil
}

// Matched returns every matched row owned by the actor, candidate profile embedded.
func (s *Service) Matched(ctx context.Context, actorID uint64) ([]db.Swipe, error) {
	swipes, err := s.swipes.ListMatched(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list matched: %w", err)
	}
	return swipes, nil
}

// MatchedUserIDs returns the ids of users mutually matched with actorID.
func (s *Service) MatchedUserIDs(ctx context.Context, actorID uint64) ([]uint64, error) {
	return s.swipes.MatchedUserIDs(ctx, actorID)
}

// sameDecision reports whether a new swipe repeats the stored one.
// A right swipe repeats both liked and matched.
func sameDecision(stored, incoming db.SwipeStatus) bool {
	if incoming == db.StatusLiked {
		return stored == db.StatusLiked || stored == db.StatusMatched
	}
	return stored == incoming
}
