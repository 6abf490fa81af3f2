package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturecast/internal/domain"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in     string
		months float64
	}{
		{"3m", 3},
		{"2y", 24},
		{"6w", 1.5},
		{"15d", 0.5},
		{" 4M ", 4},
	}
	for _, tc := range cases {
		d, err := ParseDuration(tc.in)
		require.NoError(t, err, tc.in)
		require.NotNil(t, d, tc.in)
		assert.InDelta(t, tc.months, d.Months(), 1e-9, tc.in)
	}
}

func TestParseDuration_EmptyMeansOngoing(t *testing.T) {
	d, err := ParseDuration("")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, in := range []string{"m3", "3 months", "three", "-2m", "3q"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestParseDependencyRef_DefaultAnchorEnd(t *testing.T) {
	known := map[string]bool{"t1": true}

	ref, err := ParseDependencyRef("t1", known)

	require.NoError(t, err)
	assert.Equal(t, "t1", ref.TaskID)
	assert.Equal(t, domain.AnchorEnd, ref.Anchor)
	assert.Zero(t, ref.OffsetMonths)
}

func TestParseDependencyRef_AnchorAndOffset(t *testing.T) {
	known := map[string]bool{"t1": true}

	ref, err := ParseDependencyRef("t1s+3m", known)
	require.NoError(t, err)
	assert.Equal(t, "t1", ref.TaskID)
	assert.Equal(t, domain.AnchorStart, ref.Anchor)
	assert.InDelta(t, 3.0, ref.OffsetMonths, 1e-9)

	ref, err = ParseDependencyRef("t1e-2w", known)
	require.NoError(t, err)
	assert.Equal(t, "t1", ref.TaskID)
	assert.Equal(t, domain.AnchorEnd, ref.Anchor)
	assert.InDelta(t, -0.5, ref.OffsetMonths, 1e-9)
}

func TestParseDependencyRef_IDEndingInAnchorCharWinsExactMatch(t *testing.T) {
	// "designs" ends in s; the exact id match must win over peeling an
	// anchor character off to get "design".
	known := map[string]bool{"design": true, "designs": true}

	ref, err := ParseDependencyRef("designs", known)

	require.NoError(t, err)
	assert.Equal(t, "designs", ref.TaskID)
	assert.Equal(t, domain.AnchorEnd, ref.Anchor)
}

func TestParseDependencyRef_UnknownTaskReported(t *testing.T) {
	ref, err := ParseDependencyRef("ghost+1m", map[string]bool{"t1": true})

	assert.Error(t, err)
	assert.Equal(t, "ghost", ref.TaskID)
	assert.Equal(t, "ghost+1m", ref.Raw)
}
