package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawalMarker(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, 8, 30, 19, 30, 0, 0, loc)

	// always stamped in UTC so note lines compare across hosts
	assert.Equal(t, "[withdrawn] 2026-08-30T10:30:00Z", withdrawalMarker(now))
}
