package database

import (
	"context"
	"time"
)

// UserRow is the parent snapshot the generator reads for a user.
type UserRow struct {
	ID        int64
	Username  string
	Status    string
	CreatedAt time.Time
	DeletedAt *time.Time
}

// CourseRow is the parent snapshot the generator reads for a course.
type CourseRow struct {
	ID        int64
	Title     string
	Status    string
	CreatedAt time.Time
	DeletedAt *time.Time
}

// LessonRef locates a lesson inside its chapter and course, ordered by
// (chapter order, lesson order).
type LessonRef struct {
	LessonID     int64
	ChapterID    int64
	CourseID     int64
	ChapterOrder int
	LessonOrder  int
}

// EnrollmentRow is the parent snapshot for one user_courses row, joined with
// the username and course title for progress reporting.
type EnrollmentRow struct {
	UserID      int64
	CourseID    int64
	Status      string
	EnrolledAt  time.Time
	CompletedAt *time.Time
	Username    string
	CourseTitle string
}

// Gateway is the storage boundary of the generator. One run holds at most one
// transaction: Begin before the first insert, Commit on success, Rollback on
// a fatal error. Truncation happens outside the transaction.
type Gateway interface {
	Close() error
	Ping(ctx context.Context) error

	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Truncate clears the given tables child-first, suspending foreign key
	// enforcement where the provider requires it.
	Truncate(ctx context.Context, tables ...string) error

	// InsertBatch writes rows into table and returns the generated surrogate
	// ids, in row order, for tables that have one.
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) ([]int64, error)

	// Count returns the number of rows in table matching the equality filters.
	Count(ctx context.Context, table string, filters map[string]any) (int, error)

	RoleID(ctx context.Context, name string) (int64, error)
	UsersByRole(ctx context.Context, role string) ([]UserRow, error)
	Courses(ctx context.Context) ([]CourseRow, error)
	CourseLessons(ctx context.Context, courseID int64) ([]LessonRef, error)
	ActiveEnrollments(ctx context.Context) ([]EnrollmentRow, error)

	// LessonPathExists verifies the lesson→chapter→course chain still holds
	// for a progress row about to be written.
	LessonPathExists(ctx context.Context, lessonID, chapterID, courseID int64) (bool, error)
}
