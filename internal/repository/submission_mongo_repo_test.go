package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cihai_ugc_202508/internal/model"
)

// 需要真实 MongoDB，未设置 MONGODB_URI 时跳过
func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("跳过: 未设置 MONGODB_URI")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("cihai_ugc_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestSubmissionMongoRepo_CRUD(t *testing.T) {
	db := setupMongo(t)
	repo := NewSubmissionMongoRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newSubmission("m-old", model.SubmissionStatusPending, base)))
	require.NoError(t, repo.Create(ctx, newSubmission("m-new", model.SubmissionStatusPending, base.Add(time.Minute))))

	list, err := repo.List(ctx, SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m-new", list[0].ID)
	assert.True(t, list[0].Timestamp.Equal(base.Add(time.Minute)))

	n, err := repo.UpdateStatus(ctx, "m-old", model.SubmissionStatusRejected, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetByID(ctx, "m-old")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusRejected, got.Status)
	assert.NotNil(t, got.UpdatedAt)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestSubmissionMongoRepo_LegacyObjectID(t *testing.T) {
	db := setupMongo(t)
	repo := NewSubmissionMongoRepository(db)
	ctx := context.Background()

	oid := primitive.NewObjectID()
	_, err := db.Collection(SubmissionCollection).InsertOne(ctx, bson.M{
		"_id":              oid,
		"postLink":         "https://xhslink.com/abc",
		"generatedContent": bson.M{"title": "旧数据", "mainText": "正文", "hashtags": bson.A{"#辞海"}},
		"timestamp":        "2025-08-01T08:00:00.000Z",
		"status":           "pending",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), got.ID)
	assert.Equal(t, "旧数据", got.GeneratedContent.Data().Title)
	assert.Equal(t, 2025, got.Timestamp.Year())
}
