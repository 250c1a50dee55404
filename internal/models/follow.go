// Package models contains data structures for the application's domain models.
package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Follow is one edge of the follow graph: FollowerID follows FolloweeID.
// The combination of FollowerID and FolloweeID must be unique.
//
// A single row represents both sides of the relationship: the followee's
// follower set and the follower's following set are two queries over the
// same table, so the pair update is atomic by construction.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

// BeforeCreate rejects self-follow edges; a user never appears in its
// own follower or following set.
func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.FollowerID == f.FolloweeID {
		return errors.New("self-follow is not allowed")
	}
	return nil
}
