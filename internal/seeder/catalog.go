package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// courseStatuses is the uniform draw for top-level courses. Lower levels
// derive theirs from the parent instead.
var courseStatuses = []string{StatusDraft, StatusPublished, StatusArchived}

// seedCatalog creates categories, courses and their link rows. Courses hang
// off existing instructor accounts, so the users stage must have run first.
func (s *Seeder) seedCatalog(ctx context.Context) error {
	// Catalog entities spread over the two years leading up to now.
	window := Window{Start: s.now.AddDate(-2, 0, 0), End: s.now}
	tracker := NewTracker()

	categoryIDs, err := s.seedCategories(ctx, tracker, window)
	if err != nil {
		return err
	}

	instructors, err := s.gateway.UsersByRole(ctx, RoleInstructor)
	if err != nil {
		return err
	}
	if len(instructors) == 0 {
		return fmt.Errorf("no instructors found, run the users stage first")
	}

	columns := []string{"title", "description", "instructor_id", "status", "created_at", "updated_at", "deleted_at"}
	var rows [][]any
	for i := 0; i < s.config.Targets.Courses; i++ {
		title, err := tracker.ReserveWith("course_title", 255, nil, func(int) string {
			return s.content.CourseTitle()
		})
		if err != nil {
			if errors.Is(err, ErrKeyExhausted) {
				s.summary.Failed++
				continue
			}
			return err
		}

		createdAt, updatedAt, err := s.spanDates(window)
		if err != nil {
			return err
		}
		status := s.sampler.pick(courseStatuses)

		// An archived course keeps its archival instant in deleted_at so
		// descendants have a hard stop to sample against.
		var deletedAt *time.Time
		if status == StatusArchived {
			deletedAt = &updatedAt
		}

		instructor := instructors[s.sampler.IntBetween(0, len(instructors)-1)]
		rows = append(rows, []any{title, s.content.CourseDescription(), instructor.ID,
			status, createdAt, updatedAt, deletedAt})
		s.summary.record("courses", status)
	}

	courseIDs, err := s.gateway.InsertBatch(ctx, "courses", columns, rows)
	if err != nil {
		return err
	}

	// 1 to 3 categories per course.
	var linkRows [][]any
	if len(categoryIDs) > 0 {
		for _, courseID := range courseIDs {
			n := s.sampler.IntBetween(1, min(3, len(categoryIDs)))
			for _, idx := range s.sampler.Perm(len(categoryIDs))[:n] {
				linkRows = append(linkRows, []any{courseID, categoryIDs[idx]})
			}
		}
	}
	if _, err := s.gateway.InsertBatch(ctx, "course_categories",
		[]string{"course_id", "category_id"}, linkRows); err != nil {
		return err
	}
	s.summary.Created += len(linkRows)

	color.Green("  ✅ %d categories, %d courses, %d links created",
		len(categoryIDs), len(courseIDs), len(linkRows))
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context, tracker *Tracker, window Window) ([]int64, error) {
	target := s.config.Targets.Categories
	columns := []string{"name", "created_at", "updated_at", "deleted_at"}
	var rows [][]any

	addCategory := func(area string) error {
		name, err := tracker.ReserveWith("category", 100, nil, func(int) string {
			return s.content.CategoryName(area)
		})
		if err != nil {
			if errors.Is(err, ErrKeyExhausted) {
				s.summary.Failed++
				return nil
			}
			return err
		}
		createdAt, updatedAt, err := s.spanDates(window)
		if err != nil {
			return err
		}
		rows = append(rows, []any{name, createdAt, updatedAt, nil})
		s.summary.Created++
		return nil
	}

	// Main subject areas first, templated names for the rest.
	for _, area := range mainCategoryAreas {
		if len(rows) >= target {
			break
		}
		if err := addCategory(area); err != nil {
			return nil, err
		}
	}
	// Bounded so a saturated name pool ends the stage instead of spinning.
	for attempts := 0; len(rows) < target && attempts < target*2; attempts++ {
		if err := addCategory(""); err != nil {
			return nil, err
		}
	}

	return s.gateway.InsertBatch(ctx, "categories", columns, rows)
}

// spanDates draws a created_at within the window and an updated_at between
// created_at and the window end.
func (s *Seeder) spanDates(w Window) (time.Time, time.Time, error) {
	createdAt, err := s.sampler.Between(w.Start, w.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	updatedAt, err := s.sampler.Between(createdAt, w.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return createdAt, updatedAt, nil
}
