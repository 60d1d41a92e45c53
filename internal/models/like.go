package models

import "time"

type LikeTargetType string

const (
	LikeTargetPost    LikeTargetType = "post"
	LikeTargetComment LikeTargetType = "comment"
)

func (t LikeTargetType) Valid() bool {
	return t == LikeTargetPost || t == LikeTargetComment
}

// Like records one user's reaction to one target; at most one Like exists per
// (target, user) pair.
type Like struct {
	TargetType LikeTargetType `json:"targetType"`
	TargetID   string         `json:"targetID"`
	UserID     string         `json:"userID"`
	LikedAt    time.Time      `json:"likedAt"`
}
