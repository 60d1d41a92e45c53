package models

import "time"

type Post struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupID"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	Images       [][]byte  `json:"images,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LikeCount    uint64    `json:"likeCount"`
	CommentCount uint64    `json:"commentCount"`
}
