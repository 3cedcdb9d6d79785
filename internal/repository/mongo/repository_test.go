package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/repository/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// testURI returns the server used for integration tests, skipping when none
// is configured.
func testURI(t *testing.T) string {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping MongoDB integration tests")
	}
	return uri
}

func newTestStore(t *testing.T, uri string) repository.Store {
	t.Helper()
	ctx := context.Background()
	database := fmt.Sprintf("taskboard_test_%d", time.Now().UnixNano())

	repo, err := New(ctx, uri, database)
	require.NoError(t, err)

	t.Cleanup(func() {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return
		}
		defer client.Disconnect(ctx)
		client.Database(database).Drop(ctx)
	})
	return repo
}

func TestMongoStore(t *testing.T) {
	uri := testURI(t)
	storetest.Run(t, func(t *testing.T) repository.Store {
		return newTestStore(t, uri)
	})
}

func TestEnsureIndexes_Idempotent(t *testing.T) {
	uri := testURI(t)
	repo := newTestStore(t, uri).(*MongoRepository)
	defer repo.Close()

	assert.NoError(t, repo.EnsureIndexes(context.Background()))
}

func TestBuildUpdate(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 30, 0, 123456789, time.UTC)
	title := "  Renamed "
	status := domain.StatusCompleted
	due := domain.NewDate(2025, time.February, 1)

	update := buildUpdate(domain.TaskPatch{Title: &title, Status: &status, DueDate: &due}, now)
	set := update["$set"].(bson.M)
	assert.Equal(t, "Renamed", set["title"])
	assert.Equal(t, "completed", set["status"])
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *(set["dueDate"].(*time.Time)))
	assert.Equal(t, now.Truncate(time.Millisecond), set["updatedAt"])
	assert.NotContains(t, update, "$unset")

	update = buildUpdate(domain.TaskPatch{ClearDueDate: true, DueDate: &due}, now)
	set = update["$set"].(bson.M)
	assert.NotContains(t, set, "dueDate")
	assert.Equal(t, bson.M{"dueDate": ""}, update["$unset"])
}

func TestDocumentConversion(t *testing.T) {
	oid := primitive.NewObjectID()
	due := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	doc := taskDocument{
		ID:          oid,
		TaskID:      "uid",
		Title:       "Buy milk",
		Description: "2l",
		Status:      "in-progress",
		DueDate:     &due,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	task := doc.toDomain()
	assert.Equal(t, oid.Hex(), task.ID)
	assert.Equal(t, domain.StatusInProgress, task.Status)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, domain.NewDate(2025, time.March, 9), *task.DueDate)

	back := fromDomain(task)
	assert.True(t, back.ID.IsZero(), "id is assigned by the server")
	assert.Equal(t, doc.TaskID, back.TaskID)
	assert.Equal(t, due, *back.DueDate)

	undated := fromDomain(&domain.Task{Title: "x"})
	assert.Nil(t, undated.DueDate)
}

func TestInvalidIDIsNotFound(t *testing.T) {
	// no server needed: malformed ids are rejected before any round trip
	repo := &MongoRepository{}
	_, err := repo.FindByID(context.Background(), "nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	assert.Error(t, repo.DeleteByID(context.Background(), "123"))
}
