// Package mongostore implements the repository interfaces on MongoDB.
//
// Documents use the UUID string as _id so ids look the same whichever
// backend served them. Uniqueness is enforced by the indexes created in
// EnsureIndexes, never by read-then-write checks.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowboard/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	DefaultDatabase = "flowboard"

	usersCollection  = "users"
	boardsCollection = "boards"
	tasksCollection  = "tasks"
)

// Connect dials uri and returns the database named in its path, or DefaultDatabase.
func Connect(ctx context.Context, uri string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(DatabaseName(uri)), nil
}

func DatabaseName(uri string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return DefaultDatabase
	}
	return cs.Database
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		boardsCollection: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "name", Value: 1}}, Options: unique},
		},
		tasksCollection: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "boardId", Value: 1}}},
		},
	}

	for _, name := range []string{usersCollection, boardsCollection, tasksCollection} {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, specs[name]); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

// NewStores builds the mongo-backed stores over db.
func NewStores(db *mongo.Database) repository.Stores {
	return repository.Stores{
		Users:  NewUserRepository(db),
		Boards: NewBoardRepository(db),
		Tasks:  NewTaskRepository(db),
	}
}

func translate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errors.Join(repository.ErrDuplicate, err)
	}
	return err
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

var (
	_ repository.UserStore  = (*UserRepository)(nil)
	_ repository.BoardStore = (*BoardRepository)(nil)
	_ repository.TaskStore  = (*TaskRepository)(nil)
)
