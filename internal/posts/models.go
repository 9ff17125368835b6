package posts

import "time"

type Group struct {
	ID          string
	Title       string
	Slug        string
	Description string
	CreatedAt   time.Time
}

// Post carries the author username and group title/slug alongside the row so
// feed templates render without extra lookups. GroupID is nil for ungrouped
// posts (and for posts whose group was deleted).
type Post struct {
	ID         string
	AuthorID   string
	AuthorName string
	GroupID    *string
	GroupTitle string
	GroupSlug  string
	Text       string
	ImagePath  string
	CreatedAt  time.Time
}

type Comment struct {
	ID         string
	PostID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}
