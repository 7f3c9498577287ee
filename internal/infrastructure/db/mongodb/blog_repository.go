package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bloglist-service/internal/domain/entities"
	domainerrors "bloglist-service/internal/domain/errors"
	"bloglist-service/internal/domain/repositories"
)

var ownerProjection = bson.M{"username": 1, "name": 1}

type BlogRepository struct {
	blogs *mongo.Collection
	users *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) repositories.BlogRepository {
	return &BlogRepository{
		blogs: db.Collection(blogsCollection),
		users: db.Collection(usersCollection),
	}
}

func (r *BlogRepository) Create(ctx context.Context, blog *entities.ValidatedBlog) (*entities.Blog, error) {
	if _, err := r.blogs.InsertOne(ctx, newBlogDocument(blog.GetBlog())); err != nil {
		return nil, errors.Wrap(err, "insert blog")
	}
	return r.FindById(ctx, blog.Id)
}

func (r *BlogRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.Blog, error) {
	var doc blogDocument
	if err := r.blogs.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find blog")
	}
	return r.populate(ctx, &doc)
}

func (r *BlogRepository) List(ctx context.Context) ([]*entities.Blog, error) {
	cursor, err := r.blogs.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "list blogs")
	}
	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode blogs")
	}

	ownerIds := make([]string, 0, len(docs))
	for _, d := range docs {
		ownerIds = append(ownerIds, d.User)
	}
	owners, err := r.findOwners(ctx, ownerIds)
	if err != nil {
		return nil, err
	}

	blogs := make([]*entities.Blog, 0, len(docs))
	for i := range docs {
		blog, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		blog.User = owners[docs[i].User]
		blogs = append(blogs, blog)
	}
	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, blog *entities.ValidatedBlog) (*entities.Blog, error) {
	b := blog.GetBlog()
	res, err := r.blogs.UpdateByID(ctx, b.Id.String(), bson.M{"$set": bson.M{
		"title":     b.Title,
		"author":    b.Author,
		"url":       b.Url,
		"likes":     b.Likes,
		"updatedAt": b.UpdatedAt,
	}})
	if err != nil {
		return nil, errors.Wrap(err, "update blog")
	}
	if res.MatchedCount == 0 {
		return nil, domainerrors.ErrBlogNotFound
	}
	return r.FindById(ctx, b.Id)
}

func (r *BlogRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (*entities.Blog, error) {
	var doc blogDocument
	err := r.blogs.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$inc": bson.M{"likes": 1}, "$set": bson.M{"updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrBlogNotFound
		}
		return nil, errors.Wrap(err, "increment likes")
	}
	return r.populate(ctx, &doc)
}

// Delete removes the blog and pulls its id from the owner's blog list.
func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var doc blogDocument
	if err := r.blogs.FindOneAndDelete(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainerrors.ErrBlogNotFound
		}
		return errors.Wrap(err, "delete blog")
	}

	_, err := r.users.UpdateByID(ctx, doc.User, bson.M{
		"$pull": bson.M{"blogs": doc.Id},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return errors.Wrap(err, "detach blog from owner")
	}
	return nil
}

func (r *BlogRepository) populate(ctx context.Context, doc *blogDocument) (*entities.Blog, error) {
	blog, err := doc.toEntity()
	if err != nil {
		return nil, err
	}
	owners, err := r.findOwners(ctx, []string{doc.User})
	if err != nil {
		return nil, err
	}
	blog.User = owners[doc.User]
	return blog, nil
}

func (r *BlogRepository) findOwners(ctx context.Context, ids []string) (map[string]*entities.User, error) {
	owners := make(map[string]*entities.User, len(ids))
	if len(ids) == 0 {
		return owners, nil
	}

	cursor, err := r.users.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(ownerProjection),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find blog owners")
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode blog owners")
	}
	for i := range docs {
		owner, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		owners[docs[i].Id] = owner
	}
	return owners, nil
}
