// Package mongo stores tasks as documents in a MongoDB collection.
package mongo

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// CollectionName is the collection holding task documents.
	CollectionName = "tasks"

	entityTask          = "task"
	defaultQueryTimeout = 10 * time.Second
)

var _ repository.Store = (*MongoRepository)(nil)

// MongoRepository implements repository.Store on a MongoDB collection
type MongoRepository struct {
	client       *mongo.Client
	coll         *mongo.Collection
	queryTimeout time.Duration
	now          func() time.Time
}

// Option configures a MongoRepository
type Option func(*MongoRepository)

// WithQueryTimeout bounds every store operation. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *MongoRepository) {
		r.queryTimeout = d
	}
}

// WithClock overrides the timestamp source used for createdAt/updatedAt
func WithClock(now func() time.Time) Option {
	return func(r *MongoRepository) {
		r.now = now
	}
}

// New connects to uri, verifies the connection and ensures the collection
// indexes exist.
func New(ctx context.Context, uri, database string, opts ...Option) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.NewDatabaseError("connect", err)
	}

	r := &MongoRepository{
		client:       client,
		coll:         client.Database(database).Collection(CollectionName),
		queryTimeout: defaultQueryTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.Ping(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	if err := r.EnsureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return r, nil
}

// EnsureIndexes creates the unique taskId index, the status index and the
// text index over title and description. It is idempotent.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "taskId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("taskId_unique"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
		{
			Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("title_description_text"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return errors.NewDatabaseError("create indexes", err)
	}
	return nil
}

// Close disconnects the client
func (r *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// Ping verifies the primary is reachable
func (r *MongoRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.NewDatabaseError("ping", err)
	}
	return nil
}

// Insert stores a new task and fills in its id and timestamps
func (r *MongoRepository) Insert(ctx context.Context, task *domain.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return errors.NewValidationError("title is required", nil)
	}
	if task.Status == "" {
		task.Status = domain.StatusPending
	}
	if !task.Status.IsValid() {
		return errors.NewInvalidInputError("status", task.Status, "unknown status")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// BSON dates carry millisecond precision
	now := r.now().UTC().Truncate(time.Millisecond)
	task.CreatedAt = now
	task.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, fromDomain(task))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.NewValidationError("taskId already exists", err).WithContext("taskId", task.TaskID)
		}
		return errors.NewDatabaseError("insert task", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.NewDatabaseError("insert task", stderrors.New("unexpected inserted id type"))
	}
	task.ID = oid.Hex()
	return nil
}

// FindAll retrieves all tasks in insertion order
func (r *MongoRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.NewDatabaseError("query tasks", err)
	}
	return decodeAll(ctx, cursor)
}

// FindByID retrieves a task by its ObjectID hex string
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewNotFoundError(entityTask, id)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc taskDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, r.handleSingleError(err, "find task", id)
	}
	return doc.toDomain(), nil
}

// UpdateByID applies a partial update and returns the updated task
func (r *MongoRepository) UpdateByID(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NewNotFoundError(entityTask, id)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, errors.NewValidationError("title is required", nil)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, buildUpdate(patch, r.now()), opts).Decode(&doc)
	if err != nil {
		return nil, r.handleSingleError(err, "update task", id)
	}
	return doc.toDomain(), nil
}

// DeleteByID removes a task by its ObjectID hex string
func (r *MongoRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewNotFoundError(entityTask, id)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.NewDatabaseError("delete task", err)
	}
	if res.DeletedCount == 0 {
		return errors.NewNotFoundError(entityTask, id)
	}
	return nil
}

// Search runs a $text query, best match first.
func (r *MongoRepository) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Task{}, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	score := bson.M{"$meta": "textScore"}
	opts := options.Find().
		SetProjection(bson.M{"score": score}).
		SetSort(bson.D{{Key: "score", Value: score}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"$text": bson.M{"$search": query}}, opts)
	if err != nil {
		return nil, errors.NewDatabaseError("search tasks", err)
	}
	return decodeAll(ctx, cursor)
}

func (r *MongoRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *MongoRepository) handleSingleError(err error, operation, id string) error {
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return errors.NewNotFoundError(entityTask, id)
	}
	return errors.NewDatabaseError(operation, err)
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Task, error) {
	defer cursor.Close(ctx)

	tasks := make([]*domain.Task, 0)
	for cursor.Next(ctx) {
		var doc taskDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.NewDatabaseError("decode task", err)
		}
		tasks = append(tasks, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.NewDatabaseError("iterate tasks", err)
	}
	return tasks, nil
}

// buildUpdate translates a patch into a $set/$unset update document.
func buildUpdate(patch domain.TaskPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now.UTC().Truncate(time.Millisecond)}
	update := bson.M{"$set": set}

	if patch.Title != nil {
		set["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	switch {
	case patch.ClearDueDate:
		update["$unset"] = bson.M{"dueDate": ""}
	case patch.DueDate != nil:
		set["dueDate"] = dateToTime(patch.DueDate)
	}

	return update
}
