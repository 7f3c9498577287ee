package gormdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"bloglist-service/internal/domain/entities"
	domainerrors "bloglist-service/internal/domain/errors"
	"bloglist-service/internal/domain/repositories"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) repositories.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, blog *entities.ValidatedBlog) (*entities.Blog, error) {
	blogEntity := blog.GetBlog()

	blogModel := BlogModel{
		Id:        blogEntity.Id,
		CreatedAt: blogEntity.CreatedAt,
		UpdatedAt: blogEntity.UpdatedAt,
		Title:     blogEntity.Title,
		Author:    blogEntity.Author,
		Url:       blogEntity.Url,
		Likes:     blogEntity.Likes,
		UserId:    blogEntity.UserId,
	}

	if err := r.db.WithContext(ctx).Create(&blogModel).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "create blog")
	}

	return r.FindById(ctx, blogEntity.Id)
}

func (r *BlogRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.Blog, error) {
	var blogModel BlogModel
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&blogModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find blog by id")
	}

	return blogToEntity(&blogModel), nil
}

func (r *BlogRepository) List(ctx context.Context) ([]*entities.Blog, error) {
	var blogModels []BlogModel
	if err := r.db.WithContext(ctx).Preload("User").Order("created_at").Find(&blogModels).Error; err != nil {
		return nil, errors.Wrap(err, "list blogs")
	}

	blogs := make([]*entities.Blog, 0, len(blogModels))
	for i := range blogModels {
		blogs = append(blogs, blogToEntity(&blogModels[i]))
	}
	return blogs, nil
}

// Update writes the editable fields only; user_id is never part of the update.
func (r *BlogRepository) Update(ctx context.Context, blog *entities.ValidatedBlog) (*entities.Blog, error) {
	blogEntity := blog.GetBlog()

	res := r.db.WithContext(ctx).
		Model(&BlogModel{}).
		Where("id = ?", blogEntity.Id).
		Select("title", "author", "url", "likes", "updated_at").
		Updates(BlogModel{
			Title:     blogEntity.Title,
			Author:    blogEntity.Author,
			Url:       blogEntity.Url,
			Likes:     blogEntity.Likes,
			UpdatedAt: blogEntity.UpdatedAt,
		})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update blog")
	}
	if res.RowsAffected == 0 {
		return nil, domainerrors.ErrBlogNotFound
	}

	return r.FindById(ctx, blogEntity.Id)
}

func (r *BlogRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (*entities.Blog, error) {
	res := r.db.WithContext(ctx).
		Model(&BlogModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"likes":      gorm.Expr("likes + ?", 1),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "increment likes")
	}
	if res.RowsAffected == 0 {
		return nil, domainerrors.ErrBlogNotFound
	}

	return r.FindById(ctx, id)
}

func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&BlogModel{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete blog")
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrBlogNotFound
	}
	return nil
}

func blogToEntity(blogModel *BlogModel) *entities.Blog {
	blog := &entities.Blog{
		Id:        blogModel.Id,
		CreatedAt: blogModel.CreatedAt,
		UpdatedAt: blogModel.UpdatedAt,
		Title:     blogModel.Title,
		Author:    blogModel.Author,
		Url:       blogModel.Url,
		Likes:     blogModel.Likes,
		UserId:    blogModel.UserId,
	}
	if blogModel.User != nil {
		blog.User = &entities.User{
			Id:       blogModel.User.Id,
			Username: blogModel.User.Username,
			Name:     blogModel.User.Name,
		}
	}
	return blog
}
