package gormdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"bloglist-service/internal/domain/entities"
	domainerrors "bloglist-service/internal/domain/errors"
	"bloglist-service/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userEntity := user.GetUser()

	userModel := UserModel{
		Id:           userEntity.Id,
		CreatedAt:    userEntity.CreatedAt,
		UpdatedAt:    userEntity.UpdatedAt,
		Username:     userEntity.Username,
		Name:         userEntity.Name,
		PasswordHash: userEntity.PasswordHash,
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "create user")
	}

	// Read back the created user to ensure data integrity
	return r.FindById(ctx, userEntity.Id)
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var userModel UserModel
	err := r.db.WithContext(ctx).
		Preload("Blogs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where("id = ?", id).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user by id")
	}

	return userToEntity(&userModel), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user by username")
	}

	return userToEntity(&userModel), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var userModels []UserModel
	err := r.db.WithContext(ctx).
		Preload("Blogs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Order("created_at").
		Find(&userModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// AppendOwnedBlog confirms the ownership link. In the relational schema the
// link is the blogs.user_id column written by BlogRepository.Create.
func (r *UserRepository) AppendOwnedBlog(ctx context.Context, userId, blogId uuid.UUID) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BlogModel{}).
		Where("id = ? AND user_id = ?", blogId, userId).
		Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "append owned blog")
	}
	if count == 0 {
		return domainerrors.ErrBlogNotFound
	}
	return nil
}

func userToEntity(userModel *UserModel) *entities.User {
	user := &entities.User{
		Id:           userModel.Id,
		CreatedAt:    userModel.CreatedAt,
		UpdatedAt:    userModel.UpdatedAt,
		Username:     userModel.Username,
		Name:         userModel.Name,
		PasswordHash: userModel.PasswordHash,
		Blogs:        make([]*entities.Blog, 0, len(userModel.Blogs)),
	}
	for i := range userModel.Blogs {
		user.Blogs = append(user.Blogs, blogToEntity(&userModel.Blogs[i]))
	}
	return user
}
