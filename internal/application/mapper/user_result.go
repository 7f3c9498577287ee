package mapper

import (
	"bloglist-service/internal/application/common"
	"bloglist-service/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	result := &common.UserResult{
		Id:       user.Id,
		Username: user.Username,
		Name:     user.Name,
		Blogs:    make([]*common.BlogSummary, 0, len(user.Blogs)),
	}
	for _, b := range user.Blogs {
		result.Blogs = append(result.Blogs, &common.BlogSummary{
			Id:     b.Id,
			Title:  b.Title,
			Author: b.Author,
			Url:    b.Url,
			Likes:  b.Likes,
		})
	}
	return result
}

func NewUserResultsFromEntities(users []*entities.User) []*common.UserResult {
	results := make([]*common.UserResult, 0, len(users))
	for _, u := range users {
		results = append(results, NewUserResultFromEntity(u))
	}
	return results
}
