package social

import "time"

// Profile is the public slice of a user shown on their page.
type Profile struct {
	ID       string
	Username string
	FullName string
}

type Follow struct {
	FollowerID string
	AuthorID   string
	CreatedAt  time.Time
}
