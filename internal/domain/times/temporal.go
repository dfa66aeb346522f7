package times

import (
	"sort"
	"time"
)

// BreakIDPrefix prefixes the deterministic id of an inferred break,
// keyed on the entry the break follows.
const BreakIDPrefix = "break-"

// Diff returns end - start in whole milliseconds. The result is exact
// and may be negative when end precedes start; callers treat a
// negative diff as "invalid / no gap".
func Diff(end, start time.Time) int64 {
	return end.Sub(start).Milliseconds()
}

// Now returns the current instant truncated to whole seconds. Timer
// edges are recorded without sub-second noise.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// Round floors an entry's start and end to a clock boundary and
// recomputes the duration from the rounded edges. Entries shorter
// than a minute round to seconds so a quick stopwatch tap does not
// collapse to zero; everything else rounds to minutes. An entry
// missing either edge is returned unchanged.
//
// Flooring both edges independently keeps the wall-clock start stable
// and avoids accumulating rounding error across adjacent entries.
func Round(t Time) Time {
	if t.Start.IsZero() || t.Duration == 0 {
		return t
	}

	end := t.End()

	resolution := time.Minute
	if t.Duration < time.Minute.Milliseconds() {
		resolution = time.Second
	}

	t.Start = t.Start.Truncate(resolution)
	t.Duration = Diff(end.Truncate(resolution), t.Start)
	return t
}

// ComputeBreak derives the idle gap between two chronologically
// adjacent entries as a synthetic break entry. It returns false when
// no break applies: the gap spans midnight, the previous entry itself
// spans midnight, or the entries touch or overlap.
//
// The break id is deterministic ("break-" + previous id), so
// recomputation is idempotent and never duplicates breaks. The result
// is never written back to the store here; callers decide whether to
// keep it.
func ComputeBreak(next, previous Time) (Time, bool) {
	prevEnd := previous.End()

	if !sameDay(prevEnd, next.Start) {
		return Time{}, false
	}
	if !sameDay(prevEnd, previous.Start) {
		return Time{}, false
	}

	gap := Diff(next.Start, prevEnd)
	if gap <= 0 {
		return Time{}, false
	}

	return Time{
		ID:                   BreakIDPrefix + previous.ID,
		Type:                 TypeBreak,
		Start:                prevEnd,
		Duration:             gap,
		OrganisationMemberID: previous.OrganisationMemberID,
	}, true
}

// InferBreaks returns the entries in chronological order with the
// derived break entries interleaved. The input is not modified and
// break entries are never persisted here.
func InferBreaks(entries []Time) []Time {
	ordered := make([]Time, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	out := make([]Time, 0, len(ordered))
	for i, entry := range ordered {
		if i > 0 {
			if gap, ok := ComputeBreak(entry, ordered[i-1]); ok {
				out = append(out, gap)
			}
		}
		out = append(out, entry)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
