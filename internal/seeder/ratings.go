package seeder

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"

	"github.com/openlms/seedgen/internal/database"
)

// starWeights favors four and five star ratings.
var starWeights = []Choice[int]{
	{5, 0.35},
	{4, 0.30},
	{3, 0.20},
	{2, 0.10},
	{1, 0.05},
}

// seedRatings creates up to the target number of course ratings from active
// students over non-archived courses. Pair draws are bounded; a shortfall is
// reported as failures instead of spinning on a saturated pair space.
func (s *Seeder) seedRatings(ctx context.Context) error {
	users, err := s.gateway.UsersByRole(ctx, RoleUser)
	if err != nil {
		return err
	}
	raters := activeOnly(users)
	if len(raters) == 0 {
		return fmt.Errorf("no active students found, run the users stage first")
	}

	courses, err := s.gateway.Courses(ctx)
	if err != nil {
		return err
	}
	var rateable []database.CourseRow
	for _, c := range courses {
		if c.Status != StatusArchived && c.DeletedAt == nil {
			rateable = append(rateable, c)
		}
	}
	if len(rateable) == 0 {
		return fmt.Errorf("no rateable courses found, run the catalog stage first")
	}

	target := s.config.Targets.Ratings
	if possible := len(raters) * len(rateable); target > possible {
		target = possible
	}

	tracker := NewTracker()
	columns := []string{"user_id", "course_id", "rating", "review_text", "created_at", "updated_at"}
	var rows [][]any

	maxAttempts := target * maxReserveAttempts
	for attempts := 0; len(rows) < target && attempts < maxAttempts; attempts++ {
		user := raters[s.sampler.IntBetween(0, len(raters)-1)]
		course := rateable[s.sampler.IntBetween(0, len(rateable)-1)]

		if err := tracker.ReservePair(user.ID, course.ID); err != nil {
			if errors.Is(err, ErrDuplicatePair) {
				continue
			}
			return err
		}

		stars := Weighted(s.sampler, starWeights)

		start := course.CreatedAt
		if !start.Before(s.now) {
			start = s.now.Add(-clampUnit)
		}
		createdAt, err := s.sampler.Between(start, s.now)
		if err != nil {
			return err
		}

		rows = append(rows, []any{user.ID, course.ID, stars, s.content.ReviewText(stars),
			createdAt, createdAt})
		s.summary.record("ratings", strconv.Itoa(stars)+"_star")
	}

	if shortfall := target - len(rows); shortfall > 0 {
		s.summary.Failed += shortfall
		color.Yellow("  ⚠️  Pair space saturated, %d ratings short of target", shortfall)
	}

	if _, err := s.gateway.InsertBatch(ctx, "course_ratings", columns, rows); err != nil {
		return err
	}

	color.Green("  ✅ %d ratings created", len(rows))
	return nil
}
