package seeder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentStatusArchivedAbsorbs(t *testing.T) {
	r := NewStatusResolver(NewSampler(1))

	for i := 0; i < 50; i++ {
		assert.Equal(t, StatusArchived, r.Content(StatusArchived, false))
		assert.Equal(t, StatusArchived, r.Content(StatusPublished, true))
		assert.Equal(t, StatusArchived, r.Content(StatusDraft, true))
	}
}

func TestContentStatusDraftParent(t *testing.T) {
	r := NewStatusResolver(NewSampler(1))

	for i := 0; i < 50; i++ {
		assert.Equal(t, StatusDraft, r.Content(StatusDraft, false))
	}
}

func TestContentStatusPublishedParentMix(t *testing.T) {
	r := NewStatusResolver(NewSampler(77))

	counts := map[string]int{}
	const trials = 10000
	for i := 0; i < trials; i++ {
		counts[r.Content(StatusPublished, false)]++
	}

	assert.InDelta(t, 0.7, float64(counts[StatusPublished])/trials, 0.03)
	assert.InDelta(t, 0.3, float64(counts[StatusDraft])/trials, 0.03)
	assert.Zero(t, counts[StatusArchived])
}

func TestEnrollmentStatusRecent(t *testing.T) {
	r := NewStatusResolver(NewSampler(3))
	now := date("2025-06-01")
	enrolledAt := now.Add(-3 * 24 * time.Hour)

	for i := 0; i < 200; i++ {
		status, completedAt, err := r.Enrollment(enrolledAt, now)
		require.NoError(t, err)
		assert.Contains(t, []string{EnrollmentEnrolled, EnrollmentInProgress}, status)
		assert.Nil(t, completedAt)
	}
}

func TestEnrollmentStatusMatureDistribution(t *testing.T) {
	r := NewStatusResolver(NewSampler(8))
	now := date("2025-06-01")
	enrolledAt := now.Add(-45 * 24 * time.Hour)

	counts := map[string]int{}
	const trials = 10000
	for i := 0; i < trials; i++ {
		status, _, err := r.Enrollment(enrolledAt, now)
		require.NoError(t, err)
		counts[status]++
	}

	assert.InDelta(t, 0.6, float64(counts[EnrollmentCompleted])/trials, 0.03)
	assert.InDelta(t, 0.3, float64(counts[EnrollmentInProgress])/trials, 0.03)
	assert.InDelta(t, 0.1, float64(counts[EnrollmentDropped])/trials, 0.03)
	assert.Zero(t, counts[EnrollmentEnrolled])
}

func TestEnrollmentCompletionAfterThirtyDays(t *testing.T) {
	r := NewStatusResolver(NewSampler(8))
	now := date("2025-06-01")
	enrolledAt := now.Add(-45 * 24 * time.Hour)
	earliest := enrolledAt.Add(30 * 24 * time.Hour)

	for i := 0; i < 500; i++ {
		status, completedAt, err := r.Enrollment(enrolledAt, now)
		require.NoError(t, err)
		if status != EnrollmentCompleted {
			assert.Nil(t, completedAt)
			continue
		}
		require.NotNil(t, completedAt)
		assert.False(t, completedAt.Before(earliest))
		assert.False(t, completedAt.After(now))
	}
}

func TestProgressStatusCompletedCourse(t *testing.T) {
	r := NewStatusResolver(NewSampler(1))

	assert.Equal(t, ProgressCompleted, r.Progress(EnrollmentInProgress, true, 0.9))
	assert.Equal(t, ProgressCompleted, r.Progress(EnrollmentEnrolled, true, 0.0))
}

func TestProgressStatusFreshEnrollment(t *testing.T) {
	r := NewStatusResolver(NewSampler(1))

	assert.Equal(t, ProgressNotStarted, r.Progress(EnrollmentEnrolled, false, 0.0))
}

func TestProgressStatusGradient(t *testing.T) {
	r := NewStatusResolver(NewSampler(1))

	assert.Equal(t, ProgressCompleted, r.Progress(EnrollmentInProgress, false, 0.0))
	assert.Equal(t, ProgressCompleted, r.Progress(EnrollmentInProgress, false, 0.39))
	assert.Equal(t, ProgressInProgress, r.Progress(EnrollmentInProgress, false, 0.4))
	assert.Equal(t, ProgressInProgress, r.Progress(EnrollmentInProgress, false, 0.59))
	assert.Equal(t, ProgressNotStarted, r.Progress(EnrollmentInProgress, false, 0.6))
	assert.Equal(t, ProgressNotStarted, r.Progress(EnrollmentInProgress, false, 0.95))
}
