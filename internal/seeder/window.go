package seeder

import "time"

// clampUnit is the fallback span used when a parent's window collapses to
// nothing (created at or after "now"). Sampling still needs a non-empty range.
const clampUnit = 24 * time.Hour

// Window is the [Start, End] span during which an entity validly exists.
// HardStop carries the archival/deletion instant when one exists; a nil
// HardStop means the entity is still open-ended.
type Window struct {
	Start    time.Time
	End      time.Time
	HardStop *time.Time
}

// EffectiveEnd returns the last instant children may be stamped with: the
// hard archival/deletion instant when present, otherwise now. An ARCHIVED
// parent that somehow lacks a hard stop falls back to its own End so that
// children never outlive it.
func (w Window) EffectiveEnd(parentStatus string, now time.Time) time.Time {
	if w.HardStop != nil {
		return *w.HardStop
	}
	if parentStatus == StatusArchived {
		return w.End
	}
	return now
}

// ChildWindow derives the sampling window for children of a parent entity.
// The degenerate case (parent created at or after the effective end) is
// recovered by pulling the start back one clamp unit, never reported as an
// error.
func ChildWindow(parent Window, parentStatus string, now time.Time) Window {
	end := parent.EffectiveEnd(parentStatus, now)
	start := parent.Start
	if !start.Before(end) {
		start = end.Add(-clampUnit)
	}
	return Window{Start: start, End: end, HardStop: parent.HardStop}
}
