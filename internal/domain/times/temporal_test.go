package times_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeity-dev/zeity/internal/domain/times"
)

func instant(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestDiff(t *testing.T) {
	start := instant(t, "2024-01-01T12:00:00Z")

	require.Equal(t, int64(45000), times.Diff(start.Add(45*time.Second), start))
	require.Equal(t, int64(0), times.Diff(start, start))
	require.Equal(t, int64(-60000), times.Diff(start.Add(-time.Minute), start))
}

func TestRound_ShortEntryToSeconds(t *testing.T) {
	entry := times.Time{
		ID:       "t1",
		Start:    instant(t, "2024-01-01T12:00:30.700Z"),
		Duration: 45000,
	}

	rounded := times.Round(entry)

	require.Equal(t, instant(t, "2024-01-01T12:00:30Z"), rounded.Start)
	require.Equal(t, instant(t, "2024-01-01T12:01:15Z"), rounded.End())
	require.Equal(t, int64(45000), rounded.Duration)
}

func TestRound_LongEntryToMinutes(t *testing.T) {
	entry := times.Time{
		Start:    instant(t, "2024-01-01T12:00:45Z"),
		Duration: 10*time.Minute.Milliseconds() + 30000,
	}

	rounded := times.Round(entry)

	require.Equal(t, instant(t, "2024-01-01T12:00:00Z"), rounded.Start)
	require.Equal(t, instant(t, "2024-01-01T12:11:00Z"), rounded.End())
	require.Equal(t, 11*time.Minute.Milliseconds(), rounded.Duration)
}

func TestRound_DurationNeverNegative(t *testing.T) {
	entry := times.Time{
		Start:    instant(t, "2024-01-01T12:00:59.900Z"),
		Duration: 50,
	}

	rounded := times.Round(entry)
	require.GreaterOrEqual(t, rounded.Duration, int64(0))
}

func TestRound_IncompleteEntryIsIdentity(t *testing.T) {
	missingStart := times.Time{Duration: 45000}
	require.Equal(t, missingStart, times.Round(missingStart))

	missingDuration := times.Time{Start: instant(t, "2024-01-01T12:00:30.700Z")}
	require.Equal(t, missingDuration, times.Round(missingDuration))
}

func TestComputeBreak(t *testing.T) {
	previous := times.Time{
		ID:                   "t1",
		Start:                instant(t, "2024-01-01T09:00:00Z"),
		Duration:             time.Hour.Milliseconds(),
		OrganisationMemberID: "member-1",
	}
	next := times.Time{ID: "t2", Start: instant(t, "2024-01-01T10:30:00Z")}

	gap, ok := times.ComputeBreak(next, previous)
	require.True(t, ok)
	require.Equal(t, "break-t1", gap.ID)
	require.Equal(t, times.TypeBreak, gap.Type)
	require.Equal(t, instant(t, "2024-01-01T10:00:00Z"), gap.Start)
	require.Equal(t, int64(1800000), gap.Duration)
	require.Equal(t, "member-1", gap.OrganisationMemberID)
}

func TestComputeBreak_AbsentAcrossMidnight(t *testing.T) {
	previous := times.Time{
		ID:       "t1",
		Start:    instant(t, "2024-01-01T09:00:00Z"),
		Duration: time.Hour.Milliseconds(),
	}
	next := times.Time{ID: "t2", Start: instant(t, "2024-01-02T08:00:00Z")}

	_, ok := times.ComputeBreak(next, previous)
	require.False(t, ok)
}

func TestComputeBreak_AbsentWhenPreviousSpansMidnight(t *testing.T) {
	previous := times.Time{
		ID:       "t1",
		Start:    instant(t, "2024-01-01T23:00:00Z"),
		Duration: 2 * time.Hour.Milliseconds(),
	}
	next := times.Time{ID: "t2", Start: instant(t, "2024-01-02T08:00:00Z")}

	_, ok := times.ComputeBreak(next, previous)
	require.False(t, ok)
}

func TestComputeBreak_AbsentOnOverlap(t *testing.T) {
	previous := times.Time{
		ID:       "t1",
		Start:    instant(t, "2024-01-01T09:00:00Z"),
		Duration: time.Hour.Milliseconds(),
	}
	next := times.Time{ID: "t2", Start: instant(t, "2024-01-01T09:30:00Z")}

	_, ok := times.ComputeBreak(next, previous)
	require.False(t, ok)
}

func TestComputeBreak_AbsentWhenAdjacent(t *testing.T) {
	previous := times.Time{
		ID:       "t1",
		Start:    instant(t, "2024-01-01T09:00:00Z"),
		Duration: time.Hour.Milliseconds(),
	}
	next := times.Time{ID: "t2", Start: instant(t, "2024-01-01T10:00:00Z")}

	_, ok := times.ComputeBreak(next, previous)
	require.False(t, ok)
}

func TestInferBreaks(t *testing.T) {
	entries := []times.Time{
		{ID: "b", Start: instant(t, "2024-01-01T11:00:00Z"), Duration: time.Hour.Milliseconds()},
		{ID: "a", Start: instant(t, "2024-01-01T09:00:00Z"), Duration: time.Hour.Milliseconds()},
	}

	out := times.InferBreaks(entries)
	require.Len(t, out, 3)
	require.Equal(t, "a", out[0].ID)
	require.Equal(t, "break-a", out[1].ID)
	require.Equal(t, "b", out[2].ID)
	require.Equal(t, time.Hour.Milliseconds(), out[1].Duration)

	// recomputation yields the same break ids, never duplicates
	again := times.InferBreaks(entries)
	require.Equal(t, out[1].ID, again[1].ID)
}
