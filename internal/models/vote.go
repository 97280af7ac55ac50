package models

import "time"

// VoteType is the direction of a vote. Zero/neutral votes are never stored.
type VoteType int

const (
	// VoteUp is an upvote.
	VoteUp VoteType = 1
	// VoteDown is a downvote.
	VoteDown VoteType = -1
)

// Valid reports whether the vote type is one of the enumerated directions.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Vote records one user's directional preference on one May.
// The (UserID, MayID) pair is the composite primary key.
type Vote struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	MayID     uint      `gorm:"primaryKey;autoIncrement:false" json:"may_id"`
	VoteType  VoteType  `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	May  May  `gorm:"foreignKey:MayID" json:"-"`
}

// Direction returns the metric label for the vote type.
func (v VoteType) Direction() string {
	if v == VoteDown {
		return "down"
	}
	return "up"
}

// VoteRequest is the cast/recast request body.
type VoteRequest struct {
	VoteType VoteType `json:"vote_type"`
}
