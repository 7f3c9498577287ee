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

type UserRepository struct {
	users *mongo.Collection
	blogs *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repositories.UserRepository {
	return &UserRepository{
		users: db.Collection(usersCollection),
		blogs: db.Collection(blogsCollection),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	doc := newUserDocument(user.GetUser())
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domainerrors.ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "insert user")
	}

	return r.FindById(ctx, user.Id)
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, doc, err := r.findOne(ctx, bson.M{"_id": id.String()})
	if err != nil || user == nil {
		return nil, err
	}

	owned, err := findBlogsByIds(ctx, r.blogs, doc.Blogs)
	if err != nil {
		return nil, err
	}
	user.Blogs = append(user.Blogs, owned...)
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	user, _, err := r.findOne(ctx, bson.M{"username": username})
	return user, err
}

func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	cursor, err := r.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}

	var blogIds []string
	for _, d := range docs {
		blogIds = append(blogIds, d.Blogs...)
	}
	blogs, err := findBlogsByIds(ctx, r.blogs, blogIds)
	if err != nil {
		return nil, err
	}
	byId := make(map[string]*entities.Blog, len(blogs))
	for _, b := range blogs {
		byId[b.Id.String()] = b
	}

	users := make([]*entities.User, 0, len(docs))
	for i := range docs {
		user, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		for _, blogId := range docs[i].Blogs {
			if b, ok := byId[blogId]; ok {
				user.Blogs = append(user.Blogs, b)
			}
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) AppendOwnedBlog(ctx context.Context, userId, blogId uuid.UUID) error {
	res, err := r.users.UpdateByID(ctx, userId.String(), bson.M{
		"$addToSet": bson.M{"blogs": blogId.String()},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return errors.Wrap(err, "append owned blog")
	}
	if res.MatchedCount == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entities.User, *userDocument, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, nil
		}
		return nil, nil, errors.Wrap(err, "find user")
	}
	user, err := doc.toEntity()
	if err != nil {
		return nil, nil, err
	}
	return user, &doc, nil
}

func findBlogsByIds(ctx context.Context, blogs *mongo.Collection, ids []string) ([]*entities.Blog, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := blogs.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find owned blogs")
	}
	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode owned blogs")
	}

	result := make([]*entities.Blog, 0, len(docs))
	for i := range docs {
		blog, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		result = append(result, blog)
	}
	return result, nil
}
