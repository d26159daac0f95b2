package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onegoal/pkg/apperrors"
)

func TestBoardResources(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService(&fakeBoardStore{})
	userID := primitive.NewObjectID()

	resource, err := svc.AddResource(ctx, userID, ResourceRequest{
		Title:    "Deep Work",
		URL:      "https://example.com/deep-work",
		Category: "book",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resource.ID)

	updated, err := svc.UpdateResource(ctx, userID, resource.ID, ResourceRequest{
		Title: "Deep Work (notes)",
		Note:  "chapter 3 is the one",
	})
	require.NoError(t, err)
	assert.Equal(t, resource.ID, updated.ID)
	assert.Equal(t, "Deep Work (notes)", updated.Title)
	assert.Empty(t, updated.URL, "update replaces every field")

	require.NoError(t, svc.DeleteResource(ctx, userID, resource.ID))

	err = svc.DeleteResource(ctx, userID, resource.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestBoardResourceValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService(&fakeBoardStore{})
	userID := primitive.NewObjectID()

	_, err := svc.AddResource(ctx, userID, ResourceRequest{URL: "https://example.com"})
	require.Error(t, err, "title is required")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	_, err = svc.AddResource(ctx, userID, ResourceRequest{Title: "x", URL: "not a url"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestBoardNotes(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService(&fakeBoardStore{})
	userID := primitive.NewObjectID()

	note, err := svc.AddNote(ctx, userID, NoteRequest{Text: "ship it", Color: "#00ff00", Pinned: true})
	require.NoError(t, err)
	assert.True(t, note.Pinned)

	updated, err := svc.UpdateNote(ctx, userID, note.ID, NoteRequest{Text: "shipped", Color: "#00ff00"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Text)
	assert.False(t, updated.Pinned)
	assert.True(t, updated.UpdatedAt.After(note.UpdatedAt) || updated.UpdatedAt.Equal(note.UpdatedAt))

	_, err = svc.AddNote(ctx, userID, NoteRequest{Text: "bad color", Color: "green"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	require.NoError(t, svc.DeleteNote(ctx, userID, note.ID))
	err = svc.DeleteNote(ctx, userID, note.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestGetBoardFreshUser(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService(&fakeBoardStore{})

	board, err := svc.GetBoard(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.NotNil(t, board.Resources)
	assert.Empty(t, board.Resources)
	assert.Empty(t, board.Notes)
}
