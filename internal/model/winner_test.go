package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageFromFlags(t *testing.T) {
	tests := []struct {
		name                                            string
		notified, infoCollected, sentToSponsor, shipped bool
		want                                            Stage
	}{
		{"no flags", false, false, false, false, StageCreated},
		{"notified only", true, false, false, false, StageNotified},
		{"through info collected", true, true, false, false, StageInfoCollected},
		{"through sent to sponsor", true, true, true, false, StageSentToSponsor},
		{"all flags", true, true, true, true, StageShipped},
		{"gap stops the walk", true, false, true, true, StageNotified},
		{"shipped without notified", false, false, false, true, StageCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StageFromFlags(tt.notified, tt.infoCollected, tt.sentToSponsor, tt.shipped)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStageFlagsRoundTrip(t *testing.T) {
	for stage := StageCreated; stage <= StageShipped; stage++ {
		notified, infoCollected, sentToSponsor, shipped := StageFlags(stage)
		assert.Equal(t, stage, StageFromFlags(notified, infoCollected, sentToSponsor, shipped))
	}
}

func TestCanAdvance(t *testing.T) {
	// shipped requires every predecessor
	assert.False(t, CanAdvance(StageCreated, StageShipped))
	assert.False(t, CanAdvance(StageNotified, StageShipped))
	assert.False(t, CanAdvance(StageInfoCollected, StageShipped))
	assert.True(t, CanAdvance(StageSentToSponsor, StageShipped))

	// single forward step is always allowed
	assert.True(t, CanAdvance(StageCreated, StageNotified))
	assert.True(t, CanAdvance(StageNotified, StageInfoCollected))
	assert.True(t, CanAdvance(StageInfoCollected, StageSentToSponsor))

	// skipping a stage is not
	assert.False(t, CanAdvance(StageCreated, StageInfoCollected))
	assert.False(t, CanAdvance(StageNotified, StageSentToSponsor))

	// re-reaching an already held stage is permitted (no-op for the caller)
	assert.True(t, CanAdvance(StageShipped, StageNotified))
	assert.True(t, CanAdvance(StageInfoCollected, StageInfoCollected))

	// created is not a target
	assert.False(t, CanAdvance(StageNotified, StageCreated))
}

func TestWinnerStage(t *testing.T) {
	w := &Winner{Notified: true, InfoCollected: true}
	assert.Equal(t, StageInfoCollected, w.Stage())
}

func TestParseStage(t *testing.T) {
	stage, ok := ParseStage("sent_to_sponsor")
	require.True(t, ok)
	assert.Equal(t, StageSentToSponsor, stage)

	_, ok = ParseStage("delivered")
	assert.False(t, ok)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "created", StageCreated.String())
	assert.Equal(t, "shipped", StageShipped.String())
	assert.Equal(t, "unknown", Stage(42).String())
}
