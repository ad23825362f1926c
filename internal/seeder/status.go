package seeder

import "time"

// StatusResolver derives lifecycle statuses from parent state. One resolver
// serves every hierarchy level; the variants differ only in their inputs and
// weight tables.
type StatusResolver struct {
	sampler *Sampler
}

func NewStatusResolver(sampler *Sampler) *StatusResolver {
	return &StatusResolver{sampler: sampler}
}

var contentWeights = []Choice[string]{
	{StatusPublished, 0.7},
	{StatusDraft, 0.3},
}

var enrollmentRecentWeights = []Choice[string]{
	{EnrollmentEnrolled, 0.8},
	{EnrollmentInProgress, 0.2},
}

var enrollmentMidtermWeights = []Choice[string]{
	{EnrollmentEnrolled, 0.2},
	{EnrollmentInProgress, 0.5},
	{EnrollmentCompleted, 0.2},
	{EnrollmentDropped, 0.1},
}

var enrollmentMatureWeights = []Choice[string]{
	{EnrollmentInProgress, 0.3},
	{EnrollmentCompleted, 0.6},
	{EnrollmentDropped, 0.1},
}

// Content resolves the status of a course/chapter/lesson-level child.
// ARCHIVED is absorbing: once the parent is archived (or hard-deleted) every
// descendant is archived too.
func (r *StatusResolver) Content(parentStatus string, hardDeleted bool) string {
	switch {
	case hardDeleted || parentStatus == StatusArchived:
		return StatusArchived
	case parentStatus == StatusPublished:
		return Weighted(r.sampler, contentWeights)
	default:
		return StatusDraft
	}
}

// Enrollment resolves an enrollment's status from its age, and samples a
// completion instant when the drawn status is COMPLETED. Enrollments older
// than thirty days complete no earlier than thirty days in.
func (r *StatusResolver) Enrollment(enrolledAt, now time.Time) (string, *time.Time, error) {
	age := now.Sub(enrolledAt)

	var status string
	switch {
	case age < 7*24*time.Hour:
		status = Weighted(r.sampler, enrollmentRecentWeights)
	case age < 30*24*time.Hour:
		status = Weighted(r.sampler, enrollmentMidtermWeights)
	default:
		status = Weighted(r.sampler, enrollmentMatureWeights)
	}

	if status != EnrollmentCompleted {
		return status, nil, nil
	}

	earliest := enrolledAt
	if age >= 30*24*time.Hour {
		earliest = enrolledAt.Add(30 * 24 * time.Hour)
	}
	if earliest.After(now) {
		earliest = now
	}
	completedAt, err := r.sampler.Between(earliest, now)
	if err != nil {
		return "", nil, err
	}
	return status, &completedAt, nil
}

// Progress resolves a lesson progress status. A completed enrollment absorbs
// everything into COMPLETED; a fresh enrollment starts nothing; an in-progress
// enrollment produces a completion gradient that decays along the lesson
// sequence.
func (r *StatusResolver) Progress(enrollmentStatus string, courseCompleted bool, positionRatio float64) string {
	if courseCompleted {
		return ProgressCompleted
	}
	if enrollmentStatus == EnrollmentEnrolled {
		return ProgressNotStarted
	}
	switch {
	case positionRatio < 0.4:
		return ProgressCompleted
	case positionRatio < 0.6:
		return ProgressInProgress
	default:
		return ProgressNotStarted
	}
}
