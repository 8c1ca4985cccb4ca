package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Rank(t *testing.T) {
	assert.Greater(t, StatusPresent.Rank(), StatusLeave.Rank())
	assert.Greater(t, StatusLeave.Rank(), StatusAbsent.Rank())
	assert.Greater(t, StatusAbsent.Rank(), StatusUnknown.Rank())
	assert.Equal(t, 0, Status("BOGUS").Rank())
}

func TestReconcile(t *testing.T) {
	present := StatusPresent
	absent := StatusAbsent
	leave := StatusLeave
	unknown := StatusUnknown

	tests := []struct {
		name     string
		stored   *Status
		hasLeave bool
		want     Status
	}{
		{"no row, no leave", nil, false, StatusUnknown},
		{"no row, approved leave", nil, true, StatusLeave},
		{"absent row, approved leave", &absent, true, StatusLeave},
		{"unknown row, approved leave", &unknown, true, StatusLeave},
		{"present row, approved leave", &present, true, StatusPresent},
		{"present row, no leave", &present, false, StatusPresent},
		{"leave row, no leave request", &leave, false, StatusLeave},
		{"absent row, no leave", &absent, false, StatusAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.stored, tt.hasLeave))
		})
	}
}

func TestMerge_HigherRankWins(t *testing.T) {
	assert.Equal(t, StatusPresent, Merge(StatusUnknown, StatusPresent))
	assert.Equal(t, StatusPresent, Merge(StatusAbsent, StatusPresent))
	assert.Equal(t, StatusLeave, Merge(StatusLeave, StatusAbsent))
	assert.Equal(t, StatusPresent, Merge(StatusLeave, StatusPresent))
	assert.Equal(t, StatusLeave, Merge(StatusLeave, StatusUnknown))
	assert.Equal(t, StatusPresent, Merge(StatusPresent, StatusLeave))
}

func TestUpgradeOnClockIn(t *testing.T) {
	assert.Equal(t, StatusPresent, UpgradeOnClockIn(StatusUnknown))
	assert.Equal(t, StatusPresent, UpgradeOnClockIn(StatusAbsent))
	// A leave day set by the leave-request pathway is never overwritten by a
	// clock-in on the same day.
	assert.Equal(t, StatusLeave, UpgradeOnClockIn(StatusLeave))
	assert.Equal(t, StatusPresent, UpgradeOnClockIn(StatusPresent))
}
