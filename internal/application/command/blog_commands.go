package command

import (
	"github.com/google/uuid"

	"bloglist-service/internal/application/common"
	"bloglist-service/internal/domain/policy"
)

type CreateBlogCommand struct {
	Title  string
	Author string
	Url    string
	Likes  *int
	Caller *policy.Identity
}

type UpdateBlogCommand struct {
	Id     uuid.UUID
	Title  string
	Author string
	Url    string
	Likes  *int
	Caller *policy.Identity
}

type LikeBlogCommand struct {
	Id     uuid.UUID
	Caller *policy.Identity
}

type DeleteBlogCommand struct {
	Id     uuid.UUID
	Caller *policy.Identity
}

type BlogCommandResult struct {
	Result *common.BlogResult `json:"result"`
}
