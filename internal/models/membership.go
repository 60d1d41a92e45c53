package models

import "time"

// Membership is stored twice: in the group's member list and, as a bare group
// id, in the user's joined-groups list. The store keeps both sides in sync.
type Membership struct {
	GroupID  string    `json:"groupID"`
	UserID   string    `json:"userID"`
	JoinedAt time.Time `json:"joinedAt"`
}
