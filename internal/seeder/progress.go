package seeder

import (
	"context"
	"time"

	"github.com/fatih/color"
)

// seedProgress creates one lesson progress row per (enrollment, lesson).
// Access instants walk forward through the course's lesson sequence between
// the enrollment date and the completion date (or now), and every row is
// verified against the lesson→chapter→course chain before it is written.
func (s *Seeder) seedProgress(ctx context.Context) error {
	enrollments, err := s.gateway.ActiveEnrollments(ctx)
	if err != nil {
		return err
	}
	color.Cyan("    processing %d enrollments", len(enrollments))

	columns := []string{"user_id", "course_id", "chapter_id", "lesson_id",
		"status", "last_accessed_at", "completion_date"}
	created := 0

	for _, enrollment := range enrollments {
		lessons, err := s.gateway.CourseLessons(ctx, enrollment.CourseID)
		if err != nil {
			return err
		}
		if len(lessons) == 0 {
			continue
		}

		end := s.now
		if enrollment.CompletedAt != nil {
			end = *enrollment.CompletedAt
		}
		start := enrollment.EnrolledAt
		if !start.Before(end) {
			start = end.Add(-clampUnit)
		}

		var rows [][]any
		for idx, lesson := range lessons {
			accessedAt, step, err := s.sampler.sequential(start, end, idx, len(lessons))
			if err != nil {
				return err
			}

			status := s.status.Progress(enrollment.Status, enrollment.CompletedAt != nil,
				float64(idx)/float64(len(lessons)))

			// A completion instant only exists when the whole course was
			// completed; it trails the access by one interval but never
			// passes the course completion.
			var completedAt *time.Time
			if status == ProgressCompleted && enrollment.CompletedAt != nil {
				at := accessedAt.Add(step)
				if at.After(*enrollment.CompletedAt) {
					at = *enrollment.CompletedAt
				}
				completedAt = &at
			}

			ok, err := s.gateway.LessonPathExists(ctx, lesson.LessonID, lesson.ChapterID, lesson.CourseID)
			if err != nil {
				return err
			}
			if !ok {
				s.summary.Failed++
				color.Yellow("  ⚠️  Skipping lesson %d, broken chapter/course chain", lesson.LessonID)
				continue
			}

			rows = append(rows, []any{enrollment.UserID, lesson.CourseID, lesson.ChapterID,
				lesson.LessonID, status, accessedAt, completedAt})
			s.summary.record("progress", status)
		}

		if _, err := s.gateway.InsertBatch(ctx, "user_lesson_progress", columns, rows); err != nil {
			return err
		}
		created += len(rows)

		if created%100 < len(rows) {
			color.Cyan("    … %d progress rows so far", created)
		}
	}

	color.Green("  ✅ %d progress rows created", created)
	return nil
}
