package mongostore

import (
	"context"
	"errors"
	"time"

	"flowboard/internal/model"
	"flowboard/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type boardDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	OwnerID   string    `bson:"ownerId"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d boardDocument) model() (*model.Board, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return nil, err
	}
	return &model.Board{ID: id, Name: d.Name, OwnerID: ownerID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}, nil
}

type BoardRepository struct {
	coll *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{coll: db.Collection(boardsCollection)}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	board.CreatedAt, board.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, boardDocument{
		ID:        board.ID.String(),
		Name:      board.Name,
		OwnerID:   board.OwnerID.String(),
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	})
	return translate(err)
}

func (r *BoardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "ownerId", Value: ownerID.String()}}, opts)
	if err != nil {
		return nil, err
	}

	var docs []boardDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	boards := make([]model.Board, 0, len(docs))
	for _, doc := range docs {
		b, err := doc.model()
		if err != nil {
			return nil, err
		}
		boards = append(boards, *b)
	}
	return boards, nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var doc boardDocument
	if err := r.coll.FindOne(ctx, byID(id.String())).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrBoardNotFound
		}
		return nil, err
	}
	return doc.model()
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, byID(id.String()))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrBoardNotFound
	}
	return nil
}
