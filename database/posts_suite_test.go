package database

import (
	"context"
	"testing"
	"time"

	"github.com/djmgmz/tdd-jest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// runPostModelSuite checks the behaviour every PostModel backend shares.
// store must start empty.
func runPostModelSuite(t *testing.T, store models.PostModel) {
	ctx := context.Background()

	t.Run("GetAll empty", func(t *testing.T) {
		posts, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	var first *models.Post
	t.Run("CreatePost and FindPostByID", func(t *testing.T) {
		in := models.PostInput{Author: "stswenguser", Title: "My first test post", Content: "Random content"}

		created, err := store.CreatePost(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.False(t, created.ID.IsZero())
		assert.Equal(t, in.Author, created.Author)
		assert.Equal(t, in.Title, created.Title)
		assert.Equal(t, in.Content, created.Content)
		assert.WithinDuration(t, time.Now(), created.Date, time.Minute)

		found, err := store.FindPostByID(ctx, created.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.Title, found.Title)
		assert.True(t, created.Date.Equal(found.Date))
		first = created
	})

	t.Run("FindPostByID not found", func(t *testing.T) {
		_, err := store.FindPostByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, models.ErrPostNotFound)

		_, err = store.FindPostByID(ctx, "abc123")
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})

	t.Run("GetAll keeps insertion order", func(t *testing.T) {
		require.NotNil(t, first)

		second, err := store.CreatePost(ctx, models.PostInput{Author: "b", Title: "B", Content: "second"})
		require.NoError(t, err)

		posts, err := store.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, first.ID, posts[0].ID)
		assert.Equal(t, second.ID, posts[1].ID)
	})

	t.Run("UpdatePost", func(t *testing.T) {
		require.NotNil(t, first)

		title := "New Title"
		content := "Updated"
		updated, err := store.UpdatePost(ctx, first.ID.Hex(), models.PostUpdate{Title: &title, Content: &content})
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "Updated", updated.Content)
		assert.Equal(t, first.Author, updated.Author)

		found, err := store.FindPostByID(ctx, first.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "New Title", found.Title)
	})

	t.Run("UpdatePost empty update returns current record", func(t *testing.T) {
		require.NotNil(t, first)

		current, err := store.UpdatePost(ctx, first.ID.Hex(), models.PostUpdate{})
		require.NoError(t, err)
		assert.Equal(t, first.ID, current.ID)
		assert.Equal(t, "New Title", current.Title)
	})

	t.Run("UpdatePost not found", func(t *testing.T) {
		title := "x"
		_, err := store.UpdatePost(ctx, primitive.NewObjectID().Hex(), models.PostUpdate{Title: &title})
		assert.ErrorIs(t, err, models.ErrPostNotFound)
	})
}
