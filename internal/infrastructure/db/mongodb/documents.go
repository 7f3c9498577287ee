package mongodb

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bloglist-service/internal/domain/entities"
)

type userDocument struct {
	Id           string    `bson:"_id"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
	Username     string    `bson:"username"`
	Name         string    `bson:"name,omitempty"`
	PasswordHash string    `bson:"passwordHash,omitempty"`
	Blogs        []string  `bson:"blogs"`
}

type blogDocument struct {
	Id        string    `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
	Title     string    `bson:"title"`
	Author    string    `bson:"author,omitempty"`
	Url       string    `bson:"url"`
	Likes     int       `bson:"likes"`
	User      string    `bson:"user"`
}

func newUserDocument(user *entities.User) userDocument {
	doc := userDocument{
		Id:           user.Id.String(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		Username:     user.Username,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Blogs:        make([]string, 0, len(user.Blogs)),
	}
	for _, b := range user.Blogs {
		doc.Blogs = append(doc.Blogs, b.Id.String())
	}
	return doc
}

func newBlogDocument(blog *entities.Blog) blogDocument {
	return blogDocument{
		Id:        blog.Id.String(),
		CreatedAt: blog.CreatedAt,
		UpdatedAt: blog.UpdatedAt,
		Title:     blog.Title,
		Author:    blog.Author,
		Url:       blog.Url,
		Likes:     blog.Likes,
		User:      blog.UserId.String(),
	}
}

// toEntity leaves Blogs empty; callers populate it from the blogs collection.
func (d *userDocument) toEntity() (*entities.User, error) {
	id, err := uuid.Parse(d.Id)
	if err != nil {
		return nil, errors.Wrapf(err, "user document id %q", d.Id)
	}
	return &entities.User{
		Id:           id,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Blogs:        make([]*entities.Blog, 0, len(d.Blogs)),
	}, nil
}

func (d *blogDocument) toEntity() (*entities.Blog, error) {
	id, err := uuid.Parse(d.Id)
	if err != nil {
		return nil, errors.Wrapf(err, "blog document id %q", d.Id)
	}
	owner, err := uuid.Parse(d.User)
	if err != nil {
		return nil, errors.Wrapf(err, "blog %s owner %q", d.Id, d.User)
	}
	return &entities.Blog{
		Id:        id,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Title:     d.Title,
		Author:    d.Author,
		Url:       d.Url,
		Likes:     d.Likes,
		UserId:    owner,
	}, nil
}
