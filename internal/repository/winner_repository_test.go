package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prizepacket/prizepacket/internal/apperrors"
)

func TestAppendNotePassesNoteThrough(t *testing.T) {
	db := &fakeExecutor{execRows: 1}
	repo := NewWinnerRepository()

	err := repo.AppendNote(db, 12, "[withdrawn] 2026-08-30T10:00:00Z")

	require.NoError(t, err)
	require.Len(t, db.args, 1)
	assert.Equal(t, []interface{}{"[withdrawn] 2026-08-30T10:00:00Z", int64(12)}, db.args[0])
	// notes accumulate; the statement must append, not overwrite
	assert.Contains(t, db.queries[0], "COALESCE(notes")
}

func TestAppendNoteMissingWinnerIsNotFound(t *testing.T) {
	db := &fakeExecutor{execRows: 0}
	repo := NewWinnerRepository()

	err := repo.AppendNote(db, 404, "anything")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
