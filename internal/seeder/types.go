package seeder

import "time"

// Content lifecycle statuses shared by courses, chapters and lessons.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Enrollment statuses (user_courses.status).
const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
	EnrollmentDropped    = "DROPPED"
)

// Lesson progress statuses (user_lesson_progress.status).
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// User account statuses.
const (
	UserActive   = "ACTIVE"
	UserInactive = "INACTIVE"
)

// Role names expected in the roles table.
const (
	RoleUser       = "USER"
	RoleInstructor = "INSTRUCTOR"
)

// Lesson content types.
var lessonTypes = []string{"VIDEO", "TEXT", "QUIZ"}

// Summary is the per-run report handed back to the CLI layer.
type Summary struct {
	RunID      string         `yaml:"run_id"`
	Stages     []string       `yaml:"stages"`
	Created    int            `yaml:"created"`
	Failed     int            `yaml:"failed"`
	ByStatus   map[string]int `yaml:"by_status"`
	StartedAt  time.Time      `yaml:"started_at"`
	FinishedAt time.Time      `yaml:"finished_at"`
}

func (s *Summary) record(group, status string) {
	s.Created++
	s.ByStatus[group+"/"+status]++
}
