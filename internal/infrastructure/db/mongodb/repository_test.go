package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"bloglist-service/internal/domain/entities"
	domainerrors "bloglist-service/internal/domain/errors"
)

func userDoc(id uuid.UUID, username string, blogs ...string) bson.D {
	if blogs == nil {
		blogs = []string{}
	}
	return bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "createdAt", Value: time.Now()},
		{Key: "updatedAt", Value: time.Now()},
		{Key: "username", Value: username},
		{Key: "name", Value: "Superuser"},
		{Key: "blogs", Value: blogs},
	}
}

func blogDoc(id, owner uuid.UUID, likes int) bson.D {
	return bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "createdAt", Value: time.Now()},
		{Key: "updatedAt", Value: time.Now()},
		{Key: "title", Value: "Go To Statement Considered Harmful"},
		{Key: "author", Value: "Edsger W. Dijkstra"},
		{Key: "url", Value: "https://example.com/goto"},
		{Key: "likes", Value: likes},
		{Key: "user", Value: owner.String()},
	}
}

func lookupString(t *testing.T, cmd bson.Raw, keys ...string) string {
	t.Helper()
	v, err := cmd.LookupErr(keys...)
	require.NoError(t, err, "missing %v in %s", keys, cmd)
	return v.StringValue()
}

func TestUserRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate username", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: username_1",
		}))

		user, err := entities.NewValidatedUser(entities.NewUser("root", "Superuser", "hash"))
		require.NoError(mt, err)

		_, err = repo.Create(context.Background(), user)
		assert.ErrorIs(mt, err, domainerrors.ErrUsernameTaken)
	})

	mt.Run("reads back the stored user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		user, err := entities.NewValidatedUser(entities.NewUser("root", "Superuser", "hash"))
		require.NoError(mt, err)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, userDoc(user.Id, "root")),
		)

		created, err := repo.Create(context.Background(), user)
		require.NoError(mt, err)
		assert.Equal(mt, user.Id, created.Id)
		assert.Equal(mt, "root", created.Username)
		assert.Empty(mt, created.Blogs)
	})
}

func TestUserRepositoryFindByIdPopulatesBlogs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("owned blogs", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		userId, blogId := uuid.New(), uuid.New()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, userDoc(userId, "root", blogId.String())),
			mtest.CreateCursorResponse(0, "test.blogs", mtest.FirstBatch, blogDoc(blogId, userId, 3)),
		)

		user, err := repo.FindById(context.Background(), userId)
		require.NoError(mt, err)
		require.Len(mt, user.Blogs, 1)
		assert.Equal(mt, blogId, user.Blogs[0].Id)
		assert.Equal(mt, 3, user.Blogs[0].Likes)
	})

	mt.Run("absent user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		user, err := repo.FindById(context.Background(), uuid.New())
		assert.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("malformed stored id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		doc := userDoc(uuid.New(), "root")
		doc[0].Value = "not-a-uuid"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, doc))

		user, err := repo.FindByUsername(context.Background(), "root")
		assert.Error(mt, err)
		assert.Nil(mt, user)
	})
}

func TestUserRepositoryAppendOwnedBlog(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("adds to set", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		userId, blogId := uuid.New(), uuid.New()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, repo.AppendOwnedBlog(context.Background(), userId, blogId))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		assert.Equal(mt, userId.String(), lookupString(mt.T, started.Command, "updates", "0", "q", "_id"))
		assert.Equal(mt, blogId.String(), lookupString(mt.T, started.Command, "updates", "0", "u", "$addToSet", "blogs"))
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.AppendOwnedBlog(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(mt, err, domainerrors.ErrUserNotFound)
	})
}

func TestBlogRepositoryPopulatesOwners(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB)
		ownerId, blogId := uuid.New(), uuid.New()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.blogs", mtest.FirstBatch, blogDoc(blogId, ownerId, 5)),
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, userDoc(ownerId, "root")),
		)

		blog, err := repo.FindById(context.Background(), blogId)
		require.NoError(mt, err)
		assert.Equal(mt, ownerId, blog.UserId)
		require.NotNil(mt, blog.User)
		assert.Equal(mt, "root", blog.User.Username)
		assert.Empty(mt, blog.User.PasswordHash)

		mt.GetStartedEvent()
		ownerFind := mt.GetStartedEvent()
		require.NotNil(mt, ownerFind)
		assert.Equal(mt, "find", ownerFind.CommandName)
		_, err = ownerFind.Command.LookupErr("projection", "passwordHash")
		assert.Error(mt, err)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB)
		first, second := uuid.New(), uuid.New()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.blogs", mtest.FirstBatch,
				blogDoc(uuid.New(), first, 1),
				blogDoc(uuid.New(), second, 2),
			),
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
				userDoc(first, "first"),
				userDoc(second, "second"),
			),
		)

		blogs, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, blogs, 2)
		assert.Equal(mt, "first", blogs[0].User.Username)
		assert.Equal(mt, "second", blogs[1].User.Username)
	})
}

func TestBlogRepositoryIncrementLikes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns updated blog", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB)
		ownerId, blogId := uuid.New(), uuid.New()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: blogDoc(blogId, ownerId, 6)}),
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, userDoc(ownerId, "root")),
		)

		blog, err := repo.IncrementLikes(context.Background(), blogId)
		require.NoError(mt, err)
		assert.Equal(mt, 6, blog.Likes)
		assert.Equal(mt, "root", blog.User.Username)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "findAndModify", started.CommandName)
		inc, err := started.Command.LookupErr("update", "$inc", "likes")
		require.NoError(mt, err)
		assert.EqualValues(mt, 1, inc.Int32())
		assert.True(mt, started.Command.Lookup("new").Boolean())
	})

	mt.Run("unknown blog", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := repo.IncrementLikes(context.Background(), uuid.New())
		assert.ErrorIs(mt, err, domainerrors.ErrBlogNotFound)
	})
}

func TestBlogRepositoryDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("pulls blog from owner", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB)
		ownerId, blogId := uuid.New(), uuid.New()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: blogDoc(blogId, ownerId, 0)}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		require.NoError(mt, repo.Delete(context.Background(), blogId))

		deleted := mt.GetStartedEvent()
		require.NotNil(mt, deleted)
		assert.Equal(mt, "findAndModify", deleted.CommandName)
		assert.True(mt, deleted.Command.Lookup("remove").Boolean())

		pulled := mt.GetStartedEvent()
		require.NotNil(mt, pulled)
		assert.Equal(mt, "update", pulled.CommandName)
		assert.Equal(mt, ownerId.String(), lookupString(mt.T, pulled.Command, "updates", "0", "q", "_id"))
		assert.Equal(mt, blogId.String(), lookupString(mt.T, pulled.Command, "updates", "0", "u", "$pull", "blogs"))
	})

	mt.Run("unknown blog", func(mt *mtest.T) {
		repo := NewBlogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Delete(context.Background(), uuid.New())
		assert.ErrorIs(mt, err, domainerrors.ErrBlogNotFound)
		mt.GetStartedEvent()
		assert.Nil(mt, mt.GetStartedEvent(), "owner must not be touched")
	})
}
