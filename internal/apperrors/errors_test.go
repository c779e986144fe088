package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("recording batch row 12: %w", ErrDuplicateEntry)
	assert.ErrorIs(t, wrapped, ErrDuplicateEntry)
	assert.NotErrorIs(t, wrapped, ErrOutOfStock)
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistence("create entrant", cause)

	var persistence *PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Equal(t, "create entrant", persistence.Op)
	assert.ErrorIs(t, err, cause)
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidation("db_host", "app_url")
	assert.Equal(t, "missing required fields: db_host, app_url", err.Error())
}

func TestConnectionErrorHint(t *testing.T) {
	cause := errors.New("no pg_hba.conf entry")

	withHint := &ConnectionError{Hint: "try '127.0.0.1' instead of 'localhost'", Err: cause}
	assert.Contains(t, withHint.Error(), "127.0.0.1")
	assert.ErrorIs(t, withHint, cause)

	plain := &ConnectionError{Err: cause}
	assert.NotContains(t, plain.Error(), "(")
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{WinnerID: 7, From: "notified", To: "shipped"}
	assert.Equal(t, "winner 7: cannot advance to shipped from notified", err.Error())
}

func TestConsistencyWarningIsAnError(t *testing.T) {
	var err error = &ConsistencyWarning{Detail: "release of item 3 ignored: quantity already at initial 1"}

	var warn *ConsistencyWarning
	assert.ErrorAs(t, err, &warn)
	assert.Contains(t, err.Error(), "consistency warning")
}
