package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bloglist-service/internal/application/command"
	"bloglist-service/internal/application/interfaces"
	"bloglist-service/internal/application/mapper"
	"bloglist-service/internal/application/query"
	"bloglist-service/internal/domain/entities"
	domainerrors "bloglist-service/internal/domain/errors"
	"bloglist-service/internal/domain/listhelper"
	"bloglist-service/internal/domain/policy"
	"bloglist-service/internal/domain/repositories"
	"bloglist-service/internal/infrastructure/messaging"
)

type BlogService struct {
	blogRepo repositories.BlogRepository
	userRepo repositories.UserRepository
	events   interfaces.EventPublisher
	log      *logrus.Logger
}

func NewBlogService(
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
	events interfaces.EventPublisher,
	log *logrus.Logger,
) interfaces.BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		userRepo: userRepo,
		events:   events,
		log:      log,
	}
}

type blogEvent struct {
	Id     uuid.UUID `json:"id"`
	UserId uuid.UUID `json:"userId"`
	Title  string    `json:"title,omitempty"`
	Likes  int       `json:"likes"`
}

func newBlogEvent(blog *entities.Blog) blogEvent {
	return blogEvent{Id: blog.Id, UserId: blog.UserId, Title: blog.Title, Likes: blog.Likes}
}

// CreateBlog stores a new blog owned by the caller and links it to the
// caller's blog list.
func (s *BlogService) CreateBlog(ctx context.Context, createCommand *command.CreateBlogCommand) (*command.BlogCommandResult, error) {
	caller := createCommand.Caller
	if err := policy.RequireIdentity(caller); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindById(ctx, caller.UserId)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domainerrors.ErrUserNotFound
	}

	newBlog := entities.NewBlog(createCommand.Title, createCommand.Author, createCommand.Url, createCommand.Likes, owner.Id)
	validatedBlog, err := entities.NewValidatedBlog(newBlog)
	if err != nil {
		return nil, err
	}

	createdBlog, err := s.blogRepo.Create(ctx, validatedBlog)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.AppendOwnedBlog(ctx, owner.Id, createdBlog.Id); err != nil {
		// Undo the insert when the owner link fails.
		if delErr := s.blogRepo.Delete(ctx, createdBlog.Id); delErr != nil {
			s.log.WithError(delErr).WithField("blog_id", createdBlog.Id).Error("failed to remove unlinked blog")
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"blog_id": createdBlog.Id, "user_id": owner.Id}).Info("blog created")
	publish(ctx, s.events, s.log, messaging.SubjectBlogCreated, newBlogEvent(createdBlog))

	return &command.BlogCommandResult{
		Result: mapper.NewBlogResultFromEntity(createdBlog),
	}, nil
}

func (s *BlogService) UpdateBlog(ctx context.Context, updateCommand *command.UpdateBlogCommand) (*command.BlogCommandResult, error) {
	if err := policy.RequireIdentity(updateCommand.Caller); err != nil {
		return nil, err
	}

	blog, err := s.findBlog(ctx, updateCommand.Id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanMutateBlog(updateCommand.Caller, blog.UserId); err != nil {
		return nil, err
	}

	validatedBlog, err := entities.NewValidatedBlog(blog)
	if err != nil {
		return nil, err
	}
	if err := validatedBlog.UpdateDetails(updateCommand.Title, updateCommand.Author, updateCommand.Url, updateCommand.Likes); err != nil {
		return nil, err
	}

	updatedBlog, err := s.blogRepo.Update(ctx, validatedBlog)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, s.log, messaging.SubjectBlogUpdated, newBlogEvent(updatedBlog))

	return &command.BlogCommandResult{
		Result: mapper.NewBlogResultFromEntity(updatedBlog),
	}, nil
}

// LikeBlog adds one like. Any authenticated user may like any blog.
func (s *BlogService) LikeBlog(ctx context.Context, likeCommand *command.LikeBlogCommand) (*command.BlogCommandResult, error) {
	if err := policy.RequireIdentity(likeCommand.Caller); err != nil {
		return nil, err
	}

	likedBlog, err := s.blogRepo.IncrementLikes(ctx, likeCommand.Id)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, s.log, messaging.SubjectBlogLiked, newBlogEvent(likedBlog))

	return &command.BlogCommandResult{
		Result: mapper.NewBlogResultFromEntity(likedBlog),
	}, nil
}

// DeleteBlog removes a blog. Only its creator may do so.
func (s *BlogService) DeleteBlog(ctx context.Context, deleteCommand *command.DeleteBlogCommand) error {
	if err := policy.RequireIdentity(deleteCommand.Caller); err != nil {
		return err
	}

	blog, err := s.findBlog(ctx, deleteCommand.Id)
	if err != nil {
		return err
	}
	if err := policy.CanMutateBlog(deleteCommand.Caller, blog.UserId); err != nil {
		return err
	}

	if err := s.blogRepo.Delete(ctx, blog.Id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"blog_id": blog.Id, "user_id": blog.UserId}).Info("blog deleted")
	publish(ctx, s.events, s.log, messaging.SubjectBlogDeleted, blogEvent{Id: blog.Id, UserId: blog.UserId, Likes: blog.Likes})
	return nil
}

func (s *BlogService) FindBlogById(ctx context.Context, id uuid.UUID) (*query.BlogQueryResult, error) {
	blog, err := s.findBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	return &query.BlogQueryResult{
		Result: mapper.NewBlogResultFromEntity(blog),
	}, nil
}

func (s *BlogService) ListBlogs(ctx context.Context) (*query.BlogQueryListResult, error) {
	blogs, err := s.blogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &query.BlogQueryListResult{
		Result: mapper.NewBlogResultsFromEntities(blogs),
	}, nil
}

func (s *BlogService) Stats(ctx context.Context) (*query.BlogStatsQueryResult, error) {
	blogs, err := s.blogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &query.BlogStatsQueryResult{
		Count:      len(blogs),
		Dummy:      listhelper.Dummy(blogs),
		TotalLikes: listhelper.TotalLikes(blogs),
	}
	if favorite, ok := listhelper.FavoriteBlog(blogs); ok {
		result.Favorite = mapper.NewBlogResultFromEntity(favorite)
	}
	return result, nil
}

func (s *BlogService) findBlog(ctx context.Context, id uuid.UUID) (*entities.Blog, error) {
	blog, err := s.blogRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, domainerrors.ErrBlogNotFound
	}
	return blog, nil
}
