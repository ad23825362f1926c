package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/openlms/seedgen/internal/database"
)

// seedEnrollments enrolls every active student into a handful of published
// courses. The (user, course) pair is the natural key; the pair tracker keeps
// the run free of duplicates.
func (s *Seeder) seedEnrollments(ctx context.Context) error {
	users, err := s.gateway.UsersByRole(ctx, RoleUser)
	if err != nil {
		return err
	}
	students := activeOnly(users)
	if len(students) == 0 {
		return fmt.Errorf("no active students found, run the users stage first")
	}

	courses, err := s.gateway.Courses(ctx)
	if err != nil {
		return err
	}
	var published []database.CourseRow
	for _, c := range courses {
		if c.Status == StatusPublished && c.DeletedAt == nil {
			published = append(published, c)
		}
	}
	if len(published) == 0 {
		return fmt.Errorf("no published courses found, run the catalog stage first")
	}

	tracker := NewTracker()
	columns := []string{"user_id", "course_id", "enrollment_date", "completion_date", "status"}
	var rows [][]any

	for _, student := range students {
		n := s.sampler.IntBetween(s.config.Targets.MinEnrollmentsPerUser,
			min(s.config.Targets.MaxEnrollmentsPerUser, len(published)))
		// A course pool smaller than the minimum caps the draw.
		if n > len(published) {
			n = len(published)
		}

		for _, idx := range s.sampler.Perm(len(published))[:n] {
			course := published[idx]
			if err := tracker.ReservePair(student.ID, course.ID); err != nil {
				if errors.Is(err, ErrDuplicatePair) {
					continue
				}
				return err
			}

			enrolledAt, err := s.enrollmentDate(student.CreatedAt, course.CreatedAt)
			if err != nil {
				return err
			}
			status, completedAt, err := s.status.Enrollment(enrolledAt, s.now)
			if err != nil {
				return err
			}

			rows = append(rows, []any{student.ID, course.ID, enrolledAt, completedAt, status})
			s.summary.record("enrollments", status)
		}
	}

	if _, err := s.gateway.InsertBatch(ctx, "user_courses", columns, rows); err != nil {
		return err
	}

	color.Green("  ✅ %d enrollments created for %d students", len(rows), len(students))
	return nil
}

// enrollmentDate samples an instant after both the user and the course
// existed. A start at or past now is pulled back one clamp unit.
func (s *Seeder) enrollmentDate(userCreated, courseCreated time.Time) (time.Time, error) {
	start := userCreated
	if courseCreated.After(start) {
		start = courseCreated
	}
	if !start.Before(s.now) {
		start = s.now.Add(-clampUnit)
	}
	return s.sampler.Between(start, s.now)
}
