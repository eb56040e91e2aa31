package domain

import "time"

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 10
)

// Review is a scored write-up on a title. Author and TitleID are set by the
// server on create and never change afterwards. An author may hold at most
// one review per title.
type Review struct {
	ID        int64     `json:"id"`
	TitleID   int64     `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
}

// OwnerUsername reports the review's author for ownership checks.
func (r *Review) OwnerUsername() string { return r.Author }

// Comment is a reply to a review. Author and ReviewID are server-assigned.
type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
}

// OwnerUsername reports the comment's author for ownership checks.
func (c *Comment) OwnerUsername() string { return c.Author }
