package common

import (
	"github.com/google/uuid"
)

type UserResult struct {
	Id       uuid.UUID      `json:"id"`
	Username string         `json:"username"`
	Name     string         `json:"name"`
	Blogs    []*BlogSummary `json:"blogs"`
}

// UserSummary is the owner shape embedded in blog results.
type UserSummary struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
}
