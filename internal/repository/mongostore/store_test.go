package mongostore_test

import (
	"context"
	"testing"
	"time"

	"flowboard/internal/model"
	"flowboard/internal/repository"
	"flowboard/internal/repository/mongostore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestDatabaseName(t *testing.T) {
	assert.Equal(t, "flowboard", mongostore.DatabaseName("mongodb://localhost:27017/flowboard"))
	assert.Equal(t, "kanban", mongostore.DatabaseName("mongodb://user:pw@db:27017/kanban?authSource=admin"))
	assert.Equal(t, mongostore.DefaultDatabase, mongostore.DatabaseName("mongodb://localhost:27017"))
	assert.Equal(t, mongostore.DefaultDatabase, mongostore.DatabaseName("not a uri"))
}

func TestEnsureIndexes(t *testing.T) {
	mt := newMock(t)

	mt.Run("creates indexes on every collection", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)
		require.NoError(mt, mongostore.EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("propagates failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad index",
		}))
		err := mongostore.EnsureIndexes(context.Background(), mt.DB)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "users")
	})
}

func TestUserRepository(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := mongostore.NewUserRepository(mt.DB)

		user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
		require.NoError(mt, repo.Create(ctx, user))
		assert.NotEqual(mt, uuid.Nil, user.ID)
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))
		repo := mongostore.NewUserRepository(mt.DB)

		err := repo.Create(ctx, &model.User{Username: "alice", Email: "alice@example.com"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		id := uuid.New()
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowboard.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id.String()},
			{Key: "username", Value: "alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "passwordHash", Value: "hash"},
			{Key: "createdAt", Value: now},
			{Key: "updatedAt", Value: now},
		}))
		repo := mongostore.NewUserRepository(mt.DB)

		user, err := repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "alice", user.Username)
		assert.Equal(mt, "hash", user.PasswordHash)
	})

	mt.Run("find by email missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowboard.users", mtest.FirstBatch))
		repo := mongostore.NewUserRepository(mt.DB)

		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(mt, err, repository.ErrUserNotFound)
	})

	mt.Run("update returns stored document", func(mt *mtest.T) {
		id := uuid.New()
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id.String()},
			{Key: "username", Value: "alicia"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "passwordHash", Value: "hash"},
			{Key: "createdAt", Value: now},
			{Key: "updatedAt", Value: now},
		}}))
		repo := mongostore.NewUserRepository(mt.DB)

		username := "alicia"
		user, err := repo.Update(ctx, id, repository.UserUpdate{Username: &username})
		require.NoError(mt, err)
		assert.Equal(mt, "alicia", user.Username)
		assert.Equal(mt, "alice@example.com", user.Email)

		cmd := mt.GetStartedEvent().Command
		set := cmd.Lookup("update", "$set").Document()
		_, err = set.LookupErr("email")
		assert.Error(mt, err, "unsupplied fields must not be written")
		assert.Equal(mt, "alicia", set.Lookup("username").StringValue())
	})

	mt.Run("update missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := mongostore.NewUserRepository(mt.DB)

		username := "x"
		_, err := repo.Update(ctx, uuid.New(), repository.UserUpdate{Username: &username})
		assert.ErrorIs(mt, err, repository.ErrUserNotFound)
	})

	mt.Run("update conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error",
		}))
		repo := mongostore.NewUserRepository(mt.DB)

		email := "bob@example.com"
		_, err := repo.Update(ctx, uuid.New(), repository.UserUpdate{Email: &email})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})
}

func TestBoardRepository(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()
	ownerID := uuid.New()

	mt.Run("get owned", func(mt *mtest.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		first, second := uuid.New(), uuid.New()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowboard.boards", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: first.String()},
				{Key: "name", Value: "Home"},
				{Key: "ownerId", Value: ownerID.String()},
				{Key: "createdAt", Value: now},
				{Key: "updatedAt", Value: now},
			},
			bson.D{
				{Key: "_id", Value: second.String()},
				{Key: "name", Value: "Work"},
				{Key: "ownerId", Value: ownerID.String()},
				{Key: "createdAt", Value: now.Add(time.Second)},
				{Key: "updatedAt", Value: now.Add(time.Second)},
			},
		))
		repo := mongostore.NewBoardRepository(mt.DB)

		boards, err := repo.GetOwned(ctx, ownerID)
		require.NoError(mt, err)
		require.Len(mt, boards, 2)
		assert.Equal(mt, first, boards[0].ID)
		assert.Equal(mt, "Work", boards[1].Name)
		assert.Equal(mt, ownerID, boards[1].OwnerID)
	})

	mt.Run("get owned empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowboard.boards", mtest.FirstBatch))
		repo := mongostore.NewBoardRepository(mt.DB)

		boards, err := repo.GetOwned(ctx, ownerID)
		require.NoError(mt, err)
		assert.NotNil(mt, boards)
		assert.Empty(mt, boards)
	})

	mt.Run("create duplicate name", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))
		repo := mongostore.NewBoardRepository(mt.DB)

		err := repo.Create(ctx, &model.Board{Name: "Home", OwnerID: ownerID})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := mongostore.NewBoardRepository(mt.DB)

		assert.ErrorIs(mt, repo.Delete(ctx, uuid.New()), repository.ErrBoardNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := mongostore.NewBoardRepository(mt.DB)

		assert.NoError(mt, repo.Delete(ctx, uuid.New()))
	})
}

func TestTaskRepository(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()
	ownerID := uuid.New()

	mt.Run("create applies defaults", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := mongostore.NewTaskRepository(mt.DB)

		task := &model.Task{Title: "Write tests", OwnerID: ownerID}
		require.NoError(mt, repo.Create(ctx, task))
		assert.NotEqual(mt, uuid.Nil, task.ID)
		assert.Equal(mt, model.LabelWork, task.Label)
		assert.Equal(mt, model.StatusTodo, task.Status)
	})

	mt.Run("list decodes optional fields", func(mt *mtest.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		boardID := uuid.New()
		due := now.Add(48 * time.Hour)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowboard.tasks", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: uuid.NewString()},
				{Key: "title", Value: "On board"},
				{Key: "label", Value: "urgent"},
				{Key: "dueDate", Value: due},
				{Key: "status", Value: "inprogress"},
				{Key: "boardId", Value: boardID.String()},
				{Key: "ownerId", Value: ownerID.String()},
				{Key: "createdAt", Value: now},
				{Key: "updatedAt", Value: now},
			},
			bson.D{
				{Key: "_id", Value: uuid.NewString()},
				{Key: "title", Value: "Loose"},
				{Key: "label", Value: "personal"},
				{Key: "status", Value: "todo"},
				{Key: "ownerId", Value: ownerID.String()},
				{Key: "createdAt", Value: now},
				{Key: "updatedAt", Value: now},
			},
		))
		repo := mongostore.NewTaskRepository(mt.DB)

		tasks, err := repo.List(ctx, repository.TaskFilter{OwnerID: ownerID})
		require.NoError(mt, err)
		require.Len(mt, tasks, 2)

		assert.Equal(mt, model.LabelUrgent, tasks[0].Label)
		assert.Equal(mt, model.StatusInProgress, tasks[0].Status)
		require.NotNil(mt, tasks[0].BoardID)
		assert.Equal(mt, boardID, *tasks[0].BoardID)
		require.NotNil(mt, tasks[0].DueDate)
		assert.True(mt, due.Equal(*tasks[0].DueDate))

		assert.Nil(mt, tasks[1].BoardID)
		assert.Nil(mt, tasks[1].DueDate)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flowboard.tasks", mtest.FirstBatch))
		repo := mongostore.NewTaskRepository(mt.DB)

		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(mt, err, repository.ErrTaskNotFound)
	})

	mt.Run("update sets supplied fields only", func(mt *mtest.T) {
		id := uuid.New()
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id.String()},
			{Key: "title", Value: "Concurrent title"},
			{Key: "label", Value: "work"},
			{Key: "status", Value: "done"},
			{Key: "ownerId", Value: ownerID.String()},
			{Key: "createdAt", Value: now},
			{Key: "updatedAt", Value: now},
		}}))
		repo := mongostore.NewTaskRepository(mt.DB)

		done := model.StatusDone
		task, err := repo.Update(ctx, id, repository.TaskUpdate{Status: &done})
		require.NoError(mt, err)
		assert.Equal(mt, "Concurrent title", task.Title)
		assert.Equal(mt, model.StatusDone, task.Status)

		set := mt.GetStartedEvent().Command.Lookup("update", "$set").Document()
		assert.Equal(mt, "done", set.Lookup("status").StringValue())
		for _, key := range []string{"title", "label", "dueDate"} {
			_, err := set.LookupErr(key)
			assert.Error(mt, err, key)
		}
	})

	mt.Run("update clears due date", func(mt *mtest.T) {
		id := uuid.New()
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id.String()},
			{Key: "title", Value: "x"},
			{Key: "label", Value: "work"},
			{Key: "status", Value: "todo"},
			{Key: "ownerId", Value: ownerID.String()},
			{Key: "createdAt", Value: now},
			{Key: "updatedAt", Value: now},
		}}))
		repo := mongostore.NewTaskRepository(mt.DB)

		task, err := repo.Update(ctx, id, repository.TaskUpdate{ClearDueDate: true})
		require.NoError(mt, err)
		assert.Nil(mt, task.DueDate)

		unset := mt.GetStartedEvent().Command.Lookup("update", "$unset").Document()
		_, err = unset.LookupErr("dueDate")
		assert.NoError(mt, err)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := mongostore.NewTaskRepository(mt.DB)

		title := "x"
		_, err := repo.Update(ctx, uuid.New(), repository.TaskUpdate{Title: &title})
		assert.ErrorIs(mt, err, repository.ErrTaskNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := mongostore.NewTaskRepository(mt.DB)

		assert.ErrorIs(mt, repo.Delete(ctx, uuid.New()), repository.ErrTaskNotFound)
	})
}
