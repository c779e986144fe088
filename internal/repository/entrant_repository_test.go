package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))

	// other integrity violations are not duplicates
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("driver: bad connection")))
	assert.False(t, IsUniqueViolation(nil))

	wrapped := fmt.Errorf("create entrant: %w", &pq.Error{Code: "23505", Constraint: "unique_entry"})
	assert.True(t, IsUniqueViolation(wrapped))
}
