package mapper

import (
	"bloglist-service/internal/application/common"
	"bloglist-service/internal/domain/entities"
)

func NewBlogResultFromEntity(blog *entities.Blog) *common.BlogResult {
	result := &common.BlogResult{
		Id:     blog.Id,
		Title:  blog.Title,
		Author: blog.Author,
		Url:    blog.Url,
		Likes:  blog.Likes,
	}
	if blog.User != nil {
		result.User = &common.UserSummary{
			Id:       blog.User.Id,
			Username: blog.User.Username,
			Name:     blog.User.Name,
		}
	}
	return result
}

func NewBlogResultsFromEntities(blogs []*entities.Blog) []*common.BlogResult {
	results := make([]*common.BlogResult, 0, len(blogs))
	for _, b := range blogs {
		results = append(results, NewBlogResultFromEntity(b))
	}
	return results
}
