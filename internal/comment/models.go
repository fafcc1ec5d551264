package comment

import "time"

const MaxTextLength = 1000

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	Replies   []Comment      `json:"replies,omitempty"`
	Reactions map[string]int `json:"reactions,omitempty"`
}

type CreateRequest struct {
	Text     string  `json:"text"`
	ParentID *string `json:"parent_id"`
}

type ReactRequest struct {
	Emoji string `json:"emoji"`
}
