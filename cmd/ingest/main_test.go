package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFlags(t *testing.T) {
	require.NoError(t, validateFlags(1, "entries.csv", 50, 4))

	assert.Error(t, validateFlags(0, "entries.csv", 50, 4))
	assert.Error(t, validateFlags(1, "", 50, 4))
	assert.Error(t, validateFlags(1, "entries.csv", 0, 4))
	assert.Error(t, validateFlags(1, "entries.csv", -1, 4))
	assert.Error(t, validateFlags(1, "entries.csv", 50, 0))
}
