package models

import (
	"time"
)

// Message length bounds enforced on create and update.
const (
	MinMessageLen = 5
	MaxMessageLen = 140
)

// Thought represents a short text post with a like counter.
//
// Username is a snapshot of the author's name at creation time and is not
// updated afterwards. UserID is nil for legacy records created before
// ownership was tracked; such thoughts may be edited or deleted by anyone.
type Thought struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Hearts   int    `gorm:"not null;default:0" json:"hearts"`
	Username string `gorm:"not null" json:"username"`
	UserID   *uint  `gorm:"index" json:"user_id,omitempty"`
	// LikedBy is not persisted on this row; loaded from thought_likes at read time.
	LikedBy   []uint    `gorm:"-" json:"liked_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ThoughtLike represents a user's like on a thought.
// The combination of UserID and ThoughtID must be unique; hearts on the
// thought row tracks the count of these records.
type ThoughtLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_thought" json:"user_id"`
	ThoughtID uint      `gorm:"not null;uniqueIndex:idx_user_thought" json:"thought_id"`
	CreatedAt time.Time `json:"created_at"`
}
