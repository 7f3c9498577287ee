package common

import (
	"github.com/google/uuid"
)

type BlogResult struct {
	Id     uuid.UUID    `json:"id"`
	Title  string       `json:"title"`
	Author string       `json:"author"`
	Url    string       `json:"url"`
	Likes  int          `json:"likes"`
	User   *UserSummary `json:"user,omitempty"`
}

// BlogSummary is the blog shape embedded in user results.
type BlogSummary struct {
	Id     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	Url    string    `json:"url"`
	Likes  int       `json:"likes"`
}
