package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	noExpiry := &ServiceCredential{}
	assert.False(t, noExpiry.IsExpired(now))

	future := now.Add(time.Hour)
	assert.False(t, (&ServiceCredential{ExpiresAt: &future}).IsExpired(now))

	past := now.Add(-time.Hour)
	assert.True(t, (&ServiceCredential{ExpiresAt: &past}).IsExpired(now))

	// expiry is inclusive: at the instant itself the token is expired
	exact := now
	assert.True(t, (&ServiceCredential{ExpiresAt: &exact}).IsExpired(now))
}

func TestKnownService(t *testing.T) {
	assert.True(t, KnownService(ServiceTwitch))
	assert.True(t, KnownService(ServiceYouTube))
	assert.True(t, KnownService(ServiceGoogleSheet))
	assert.False(t, KnownService(ServiceName("manual")))
	assert.False(t, KnownService(ServiceName("")))
}

func TestKnownPlatform(t *testing.T) {
	assert.True(t, KnownPlatform(PlatformManual))
	assert.True(t, KnownPlatform(PlatformTwitch))
	assert.False(t, KnownPlatform(Platform("discord")))
}
