package service

import (
	"context"
	"math/rand"

	"murmur/internal/models"
	"murmur/internal/repository"
	"murmur/internal/validation"
)

// recentListLimit caps the recent-thoughts listing.
const recentListLimit = 20

// ThoughtService enforces validation, ownership, and like idempotence on
// top of the thought repository.
type ThoughtService struct {
	thoughtRepo repository.ThoughtRepository
	// randInt draws a uniform integer in [0, n); injected for tests.
	randInt func(n int) int
}

// CreateThoughtInput carries the authenticated author and the message.
type CreateThoughtInput struct {
	User    *models.User
	Message string
}

// UpdateThoughtInput identifies the thought, the caller, and the new message.
type UpdateThoughtInput struct {
	UserID    uint
	ThoughtID uint
	Message   string
}

// DeleteThoughtInput identifies the thought and the caller.
type DeleteThoughtInput struct {
	UserID    uint
	ThoughtID uint
}

// NewThoughtService creates a new ThoughtService.
func NewThoughtService(thoughtRepo repository.ThoughtRepository) *ThoughtService {
	return &ThoughtService{
		thoughtRepo: thoughtRepo,
		randInt:     rand.Intn,
	}
}

// ListRecent returns up to 20 thoughts, newest first. An empty board is
// reported as a not-found condition rather than an empty success list.
func (s *ThoughtService) ListRecent(ctx context.Context) ([]*models.Thought, error) {
	thoughts, err := s.thoughtRepo.ListRecent(ctx, recentListLimit)
	if err != nil {
		return nil, err
	}
	if len(thoughts) == 0 {
		return nil, models.NewEmptyResultError("No thoughts available")
	}
	return thoughts, nil
}

// ListPopular returns all thoughts ordered by hearts descending.
func (s *ThoughtService) ListPopular(ctx context.Context) ([]*models.Thought, error) {
	thoughts, err := s.thoughtRepo.ListByHearts(ctx)
	if err != nil {
		return nil, err
	}
	if len(thoughts) == 0 {
		return nil, models.NewEmptyResultError("No thoughts available")
	}
	return thoughts, nil
}

// Random samples one thought uniformly from the current population using
// count-then-offset: count all thoughts, draw an offset in [0, count),
// fetch the row at that offset under the store's default ordering.
func (s *ThoughtService) Random(ctx context.Context) (*models.Thought, error) {
	count, err := s.thoughtRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, models.NewEmptyResultError("No thoughts available")
	}
	return s.thoughtRepo.GetByOffset(ctx, s.randInt(int(count)))
}

// Get fetches one thought by id.
func (s *ThoughtService) Get(ctx context.Context, id uint) (*models.Thought, error) {
	return s.thoughtRepo.GetByID(ctx, id)
}

// Create validates the message and persists a new thought owned by the
// caller, with zero hearts and an empty liked-by set. Username is
// snapshotted from the author at creation time.
func (s *ThoughtService) Create(ctx context.Context, in CreateThoughtInput) (*models.Thought, error) {
	if err := validation.ValidateMessage(in.Message); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	userID := in.User.ID
	thought := &models.Thought{
		Message:  in.Message,
		Hearts:   0,
		Username: in.User.Username,
		UserID:   &userID,
		LikedBy:  []uint{},
	}
	if err := s.thoughtRepo.Create(ctx, thought); err != nil {
		return nil, err
	}
	return thought, nil
}

// UpdateMessage replaces the message of a thought the caller may modify.
// All other fields are left untouched.
func (s *ThoughtService) UpdateMessage(ctx context.Context, in UpdateThoughtInput) (*models.Thought, error) {
	thought, err := s.thoughtRepo.GetByID(ctx, in.ThoughtID)
	if err != nil {
		return nil, err
	}
	if err := canModify(thought, in.UserID); err != nil {
		return nil, err
	}
	if err := validation.ValidateMessage(in.Message); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.thoughtRepo.UpdateMessage(ctx, in.ThoughtID, in.Message); err != nil {
		return nil, err
	}
	thought.Message = in.Message
	return thought, nil
}

// Delete permanently removes a thought the caller may modify and returns
// the removed record for confirmation.
func (s *ThoughtService) Delete(ctx context.Context, in DeleteThoughtInput) (*models.Thought, error) {
	thought, err := s.thoughtRepo.GetByID(ctx, in.ThoughtID)
	if err != nil {
		return nil, err
	}
	if err := canModify(thought, in.UserID); err != nil {
		return nil, err
	}

	if err := s.thoughtRepo.Delete(ctx, in.ThoughtID); err != nil {
		return nil, err
	}
	return thought, nil
}

// Like records an idempotent like by userID. A repeated like is a no-op
// that returns the current state unchanged; there is no unlike.
func (s *ThoughtService) Like(ctx context.Context, userID, thoughtID uint) (*models.Thought, error) {
	thought, err := s.thoughtRepo.GetByID(ctx, thoughtID)
	if err != nil {
		return nil, err
	}

	// Skip the write entirely for a repeat like. Two concurrent first
	// likes can both miss here; the store-level insert stays the single
	// point of truth for the increment.
	liked, err := s.thoughtRepo.IsLikedBy(ctx, userID, thoughtID)
	if err != nil {
		return nil, err
	}
	if liked {
		return thought, nil
	}

	if _, err := s.thoughtRepo.Like(ctx, userID, thoughtID); err != nil {
		return nil, err
	}

	return s.thoughtRepo.GetByID(ctx, thoughtID)
}

// ListLikedBy returns the thoughts the caller has liked, in store order.
// An empty result here is a normal empty list, not an error.
func (s *ThoughtService) ListLikedBy(ctx context.Context, userID uint) ([]*models.Thought, error) {
	return s.thoughtRepo.ListLikedBy(ctx, userID)
}

// canModify applies the tri-state ownership rule: thoughts without a
// recorded owner may be modified by anyone; owned thoughts only by their
// owner.
func canModify(thought *models.Thought, userID uint) error {
	if thought.UserID == nil {
		return nil
	}
	if *thought.UserID == userID {
		return nil
	}
	return models.NewForbiddenError("You can only modify your own thoughts")
}
