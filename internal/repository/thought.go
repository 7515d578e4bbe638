package repository

import (
	"context"
	"errors"

	"murmur/internal/cache"
	"murmur/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ThoughtRepository defines the interface for thought data operations.
type ThoughtRepository interface {
	Create(ctx context.Context, thought *models.Thought) error
	GetByID(ctx context.Context, id uint) (*models.Thought, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Thought, error)
	ListByHearts(ctx context.Context) ([]*models.Thought, error)
	ListLikedBy(ctx context.Context, userID uint) ([]*models.Thought, error)
	Count(ctx context.Context) (int64, error)
	GetByOffset(ctx context.Context, offset int) (*models.Thought, error)
	UpdateMessage(ctx context.Context, id uint, message string) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, thoughtID uint) (bool, error)
	IsLikedBy(ctx context.Context, userID, thoughtID uint) (bool, error)
}

type thoughtRepository struct {
	db *gorm.DB
}

// NewThoughtRepository creates a new thought repository.
func NewThoughtRepository(db *gorm.DB) ThoughtRepository {
	return &thoughtRepository{db: db}
}

func (r *thoughtRepository) Create(ctx context.Context, thought *models.Thought) error {
	if err := r.db.WithContext(ctx).Create(thought).Error; err != nil {
		return models.NewInternalError(err)
	}
	if thought.LikedBy == nil {
		thought.LikedBy = []uint{}
	}
	cache.InvalidateRecentThoughts(ctx)
	return nil
}

func (r *thoughtRepository) GetByID(ctx context.Context, id uint) (*models.Thought, error) {
	var thought models.Thought
	key := cache.ThoughtKey(id)

	err := cache.Aside(ctx, key, &thought, cache.ThoughtTTL, func() error {
		if err := r.db.WithContext(ctx).First(&thought, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Thought", id)
			}
			return models.NewInternalError(err)
		}
		return r.loadLikedBy(ctx, []*models.Thought{&thought})
	})
	if err != nil {
		return nil, err
	}
	return &thought, nil
}

func (r *thoughtRepository) ListRecent(ctx context.Context, limit int) ([]*models.Thought, error) {
	var thoughts []*models.Thought
	err := cache.Aside(ctx, cache.RecentThoughtsKey, &thoughts, cache.ListTTL, func() error {
		err := r.db.WithContext(ctx).
			Order("created_at DESC").
			Limit(limit).
			Find(&thoughts).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return r.loadLikedBy(ctx, thoughts)
	})
	if err != nil {
		return nil, err
	}
	return thoughts, nil
}

// ListByHearts returns all thoughts ordered by hearts descending.
// Ties break on created_at descending so the ordering is deterministic.
func (r *thoughtRepository) ListByHearts(ctx context.Context) ([]*models.Thought, error) {
	var thoughts []*models.Thought
	err := r.db.WithContext(ctx).
		Order("hearts DESC, created_at DESC").
		Find(&thoughts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.loadLikedBy(ctx, thoughts); err != nil {
		return nil, err
	}
	return thoughts, nil
}

func (r *thoughtRepository) ListLikedBy(ctx context.Context, userID uint) ([]*models.Thought, error) {
	var thoughts []*models.Thought
	err := r.db.WithContext(ctx).
		Joins("JOIN thought_likes ON thought_likes.thought_id = thoughts.id").
		Where("thought_likes.user_id = ?", userID).
		Find(&thoughts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.loadLikedBy(ctx, thoughts); err != nil {
		return nil, err
	}
	return thoughts, nil
}

func (r *thoughtRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Thought{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// GetByOffset fetches the single thought at the given offset under the
// store's default ordering. Used by the random-sample operation.
func (r *thoughtRepository) GetByOffset(ctx context.Context, offset int) (*models.Thought, error) {
	var thought models.Thought
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		First(&thought).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewEmptyResultError("No thoughts available")
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.loadLikedBy(ctx, []*models.Thought{&thought}); err != nil {
		return nil, err
	}
	return &thought, nil
}

// UpdateMessage writes only the message column, so a hearts increment
// landing between the caller's read and this write is not clobbered.
func (r *thoughtRepository) UpdateMessage(ctx context.Context, id uint, message string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Thought{}).
		Where("id = ?", id).
		Update("message", message)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Thought", id)
	}
	cache.InvalidateThought(ctx, id)
	cache.InvalidateRecentThoughts(ctx)
	return nil
}

func (r *thoughtRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thought_id = ?", id).Delete(&models.ThoughtLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Thought{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateThought(ctx, id)
	cache.InvalidateRecentThoughts(ctx)
	return nil
}

// Like records userID's like on thoughtID and returns whether a new like
// was added. The insert-if-absent and the hearts increment run in one
// transaction, so two concurrent calls from the same user cannot
// double-increment: the conflict clause makes the second insert a no-op
// and the increment is guarded by its row count.
func (r *thoughtRepository) Like(ctx context.Context, userID, thoughtID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "thought_id"}},
			DoNothing: true,
		}).Create(&models.ThoughtLike{UserID: userID, ThoughtID: thoughtID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// already liked
			return nil
		}
		liked = true
		return tx.Model(&models.Thought{}).
			Where("id = ?", thoughtID).
			UpdateColumn("hearts", gorm.Expr("hearts + ?", 1)).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if liked {
		cache.InvalidateThought(ctx, thoughtID)
		cache.InvalidateRecentThoughts(ctx)
	}
	return liked, nil
}

func (r *thoughtRepository) IsLikedBy(ctx context.Context, userID, thoughtID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ThoughtLike{}).
		Where("user_id = ? AND thought_id = ?", userID, thoughtID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// loadLikedBy populates the LikedBy slice for each thought in one query.
func (r *thoughtRepository) loadLikedBy(ctx context.Context, thoughts []*models.Thought) error {
	for _, t := range thoughts {
		t.LikedBy = []uint{}
	}
	if len(thoughts) == 0 {
		return nil
	}

	ids := make([]uint, len(thoughts))
	byID := make(map[uint]*models.Thought, len(thoughts))
	for i, t := range thoughts {
		ids[i] = t.ID
		byID[t.ID] = t
	}

	var likes []models.ThoughtLike
	if err := r.db.WithContext(ctx).
		Where("thought_id IN ?", ids).
		Order("id").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}

	for _, like := range likes {
		if t := byID[like.ThoughtID]; t != nil {
			t.LikedBy = append(t.LikedBy, like.UserID)
		}
	}
	return nil
}
