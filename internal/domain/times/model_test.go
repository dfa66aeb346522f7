package times_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeity-dev/zeity/internal/domain/times"
)

func TestTime_IsOnline(t *testing.T) {
	require.False(t, times.Time{ID: "t1"}.IsOnline())
	require.True(t, times.Time{ID: "t1", OrganisationMemberID: "m1"}.IsOnline())
}

func TestTime_End(t *testing.T) {
	entry := times.Time{
		Start:    instant(t, "2024-01-01T09:00:00Z"),
		Duration: 90 * time.Minute.Milliseconds(),
	}
	require.Equal(t, instant(t, "2024-01-01T10:30:00Z"), entry.End())
}

func TestPatch_Apply(t *testing.T) {
	entry := times.Time{
		ID:       "t1",
		Type:     times.TypeManual,
		Start:    instant(t, "2024-01-01T09:00:00Z"),
		Duration: 1000,
		Notes:    "before",
	}

	notes := "after"
	duration := int64(2000)
	times.Patch{Notes: &notes, Duration: &duration}.Apply(&entry)

	require.Equal(t, "after", entry.Notes)
	require.Equal(t, int64(2000), entry.Duration)
	require.Equal(t, "t1", entry.ID)
	require.Equal(t, instant(t, "2024-01-01T09:00:00Z"), entry.Start)
}

func TestDraftPatch_Apply(t *testing.T) {
	draft := times.Draft{Type: times.TypeManual, Start: instant(t, "2024-01-01T09:00:00Z")}

	projectID := "p1"
	times.DraftPatch{ProjectID: &projectID}.Apply(&draft)

	require.Equal(t, "p1", draft.ProjectID)
	require.Equal(t, times.TypeManual, draft.Type)
}
