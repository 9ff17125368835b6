package posts

import "strings"

// PostForm holds user-submitted fields for creating or editing a post.
// GroupID is the optional group selection; image handling is separate since
// the file arrives as a multipart part.
type PostForm struct {
	Text    string
	GroupID string
}

func (f PostForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}

type CommentForm struct {
	Text string
}

func (f CommentForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}
