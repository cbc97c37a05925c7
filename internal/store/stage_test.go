package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func openTestStage(t *testing.T) *StageStore {
	t.Helper()
	s, err := OpenStage(filepath.Join(t.TempDir(), "stage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestStageStoreUpsertPreservesCreatedAt(t *testing.T) {
	s := openTestStage(t)
	ctx := context.Background()

	require.NoError(t, s.WritePlay(ctx, "1023456", bson.M{"title": "Top Girls"}))
	created1, updated1, err := s.Timestamps(ctx, "plays", "play_id", "1023456")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, s.WritePlay(ctx, "1023456", bson.M{"title": "Top Girls", "genres": "Drama"}))
	created2, updated2, err := s.Timestamps(ctx, "plays", "play_id", "1023456")
	require.NoError(t, err)

	assert.True(t, created2.Equal(created1), "createdAt must survive repeated upserts")
	assert.True(t, updated2.After(updated1), "updatedAt must refresh on every write")

	count, err := s.Count(ctx, "plays")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "upsert must not duplicate rows")
}

func TestStageStoreAuthorsKeyedByID(t *testing.T) {
	s := openTestStage(t)
	ctx := context.Background()

	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	require.NoError(t, s.WriteAuthor(ctx, first, bson.M{"name": "John Smith"}))
	require.NoError(t, s.WriteAuthor(ctx, second, bson.M{"name": "Jane Doe"}))
	require.NoError(t, s.WriteAuthor(ctx, first, bson.M{"name": "John Smith", "nationality": "British"}))

	count, err := s.Count(ctx, "authors")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStageStoreReady(t *testing.T) {
	s := openTestStage(t)
	assert.NoError(t, s.Ready(context.Background()))
}
