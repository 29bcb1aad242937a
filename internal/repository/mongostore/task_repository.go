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

type taskDocument struct {
	ID        string     `bson:"_id"`
	Title     string     `bson:"title"`
	Label     string     `bson:"label"`
	DueDate   *time.Time `bson:"dueDate,omitempty"`
	Status    string     `bson:"status"`
	BoardID   *string    `bson:"boardId,omitempty"`
	OwnerID   string     `bson:"ownerId"`
	CreatedAt time.Time  `bson:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt"`
}

func newTaskDocument(t *model.Task) taskDocument {
	doc := taskDocument{
		ID:        t.ID.String(),
		Title:     t.Title,
		Label:     string(t.Label),
		DueDate:   t.DueDate,
		Status:    string(t.Status),
		OwnerID:   t.OwnerID.String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.BoardID != nil {
		boardID := t.BoardID.String()
		doc.BoardID = &boardID
	}
	return doc
}

func (d taskDocument) model() (*model.Task, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return nil, err
	}
	task := &model.Task{
		ID:        id,
		Title:     d.Title,
		Label:     model.Label(d.Label),
		DueDate:   d.DueDate,
		Status:    model.Status(d.Status),
		OwnerID:   ownerID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.BoardID != nil {
		boardID, err := uuid.Parse(*d.BoardID)
		if err != nil {
			return nil, err
		}
		task.BoardID = &boardID
	}
	return task, nil
}

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Label == "" {
		task.Label = model.LabelWork
	}
	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	task.CreatedAt, task.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, newTaskDocument(task))
	return translate(err)
}

func (r *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	query := bson.D{{Key: "ownerId", Value: filter.OwnerID.String()}}
	if filter.BoardID != nil {
		query = append(query, bson.E{Key: "boardId", Value: filter.BoardID.String()})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(docs))
	for _, doc := range docs {
		t, err := doc.model()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var doc taskDocument
	if err := r.coll.FindOne(ctx, byID(id.String())).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrTaskNotFound
		}
		return nil, err
	}
	return doc.model()
}

// Update sets only the supplied fields and returns the document as stored afterwards.
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, upd repository.TaskUpdate) (*model.Task, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC().Truncate(time.Millisecond)}}
	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Label != nil {
		set = append(set, bson.E{Key: "label", Value: string(*upd.Label)})
	}
	if upd.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*upd.Status)})
	}
	update := bson.D{}
	switch {
	case upd.DueDate != nil:
		set = append(set, bson.E{Key: "dueDate", Value: *upd.DueDate})
	case upd.ClearDueDate:
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "dueDate", Value: ""}}})
	}
	update = append(update, bson.E{Key: "$set", Value: set})

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	if err := r.coll.FindOneAndUpdate(ctx, byID(id.String()), update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrTaskNotFound
		}
		return nil, err
	}
	return doc.model()
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, byID(id.String()))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrTaskNotFound
	}
	return nil
}
