package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// childRange derives the per-parent child count range from a total target:
// at least floor per parent, topped up so the target is roughly met.
func childRange(target, parents, floor, spread int) (int, int) {
	low := floor
	if parents > 0 && target/parents > floor {
		low = target / parents
	}
	return low, low + spread
}

// seedCurriculum creates chapters and lessons for every course. Timestamps
// and statuses cascade: a chapter lives inside its course's window, a lesson
// inside its chapter's, and ARCHIVED ancestors archive everything below them.
func (s *Seeder) seedCurriculum(ctx context.Context) error {
	courses, err := s.gateway.Courses(ctx)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		return fmt.Errorf("no courses found, run the catalog stage first")
	}

	minChapters, maxChapters := childRange(s.config.Targets.Chapters, len(courses), 3, 2)
	minLessons, maxLessons := childRange(s.config.Targets.Lessons, len(courses)*minChapters, 4, 3)

	chaptersCreated := 0
	lessonsCreated := 0

	for _, course := range courses {
		topic := CourseTopic(course.Title)
		courseWindow := Window{Start: course.CreatedAt, End: s.now, HardStop: course.DeletedAt}
		chapterWindow := ChildWindow(courseWindow, course.Status, s.now)

		numChapters := s.sampler.IntBetween(minChapters, maxChapters)
		columns := []string{"course_id", "title", "description", "order_number",
			"status", "created_at", "updated_at", "deleted_at"}

		var rows [][]any
		type chapterMeta struct {
			title     string
			status    string
			createdAt time.Time
			updatedAt time.Time
			deletedAt *time.Time
		}
		var metas []chapterMeta

		for order := 1; order <= numChapters; order++ {
			createdAt, updatedAt, err := s.spanDates(chapterWindow)
			if err != nil {
				return err
			}
			title := s.content.ChapterTitle(topic)
			status := s.status.Content(course.Status, course.DeletedAt != nil)
			var deletedAt *time.Time
			if status == StatusArchived {
				deletedAt = &updatedAt
			}

			rows = append(rows, []any{course.ID, title, ChapterDescription(title), order,
				status, createdAt, updatedAt, deletedAt})
			metas = append(metas, chapterMeta{title, status, createdAt, updatedAt, deletedAt})
			s.summary.record("chapters", status)
		}

		chapterIDs, err := s.gateway.InsertBatch(ctx, "chapters", columns, rows)
		if err != nil {
			return err
		}
		chaptersCreated += len(chapterIDs)

		for i, chapterID := range chapterIDs {
			meta := metas[i]
			n, err := s.seedLessons(ctx, chapterID, meta.title, meta.status,
				Window{Start: meta.createdAt, End: meta.updatedAt, HardStop: meta.deletedAt}, minLessons, maxLessons)
			if err != nil {
				return err
			}
			lessonsCreated += n
		}

		if chaptersCreated%10 == 0 {
			color.Cyan("    … %d chapters, %d lessons so far", chaptersCreated, lessonsCreated)
		}
	}

	color.Green("  ✅ %d chapters, %d lessons created", chaptersCreated, lessonsCreated)
	return nil
}

func (s *Seeder) seedLessons(ctx context.Context, chapterID int64, chapterTitle, chapterStatus string,
	chapterWindow Window, minLessons, maxLessons int) (int, error) {

	// Lessons are bounded by the chapter's last update, not by now: content
	// cannot change after its chapter was last touched.
	window := ChildWindow(chapterWindow, chapterStatus, s.now)
	if window.End.After(chapterWindow.End) {
		window.End = chapterWindow.End
		if !window.Start.Before(window.End) {
			window.Start = window.End.Add(-clampUnit)
		}
	}

	numLessons := s.sampler.IntBetween(minLessons, maxLessons)
	columns := []string{"chapter_id", "title", "content", "order_number", "type",
		"status", "created_at", "updated_at", "deleted_at"}

	var rows [][]any
	for order := 1; order <= numLessons; order++ {
		createdAt, updatedAt, err := s.spanDates(window)
		if err != nil {
			return 0, err
		}
		status := s.status.Content(chapterStatus, chapterWindow.HardStop != nil)
		var deletedAt *time.Time
		if status == StatusArchived {
			deletedAt = &updatedAt
		}

		lessonType := s.sampler.pick(lessonTypes)
		title := s.content.LessonTitle(chapterTitle, order, numLessons)

		rows = append(rows, []any{chapterID, title, s.content.LessonBody(lessonType, title),
			order, lessonType, status, createdAt, updatedAt, deletedAt})
		s.summary.record("lessons", status)
	}

	ids, err := s.gateway.InsertBatch(ctx, "lessons", columns, rows)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
