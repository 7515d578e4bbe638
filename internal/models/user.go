// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the Murmur application.
// Password holds only the bcrypt hash. AccessToken is the opaque bearer
// credential issued once at registration; it is never rotated and never
// serialized into user listings.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"unique;not null" json:"username"`
	Password    string    `gorm:"not null" json:"-"`
	AccessToken string    `gorm:"not null;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
