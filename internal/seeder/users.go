package seeder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"

	"github.com/openlms/seedgen/internal/database"
)

var userStatusWeights = []Choice[string]{
	{UserActive, 0.9},
	{UserInactive, 0.1},
}

// seedUsers creates student and instructor accounts with their role links.
// Usernames and emails are derived from the person name, accent-folded, and
// kept unique against both the in-run set and the persisted table.
func (s *Seeder) seedUsers(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	// Accounts are created across the current year up to now.
	windowStart := time.Date(s.now.Year(), time.January, 1, 0, 0, 0, 0, s.now.Location())
	window := Window{Start: windowStart, End: s.now}

	tracker := NewTracker()
	usernameExists := func(candidate string) (bool, error) {
		n, err := s.gateway.Count(ctx, "users", map[string]any{"username": candidate})
		return n > 0, err
	}
	emailExists := func(candidate string) (bool, error) {
		n, err := s.gateway.Count(ctx, "users", map[string]any{"email": candidate})
		return n > 0, err
	}

	roles := []struct {
		name  string
		count int
	}{
		{RoleUser, s.config.Targets.Students},
		{RoleInstructor, s.config.Targets.Instructors},
	}

	for _, role := range roles {
		roleID, err := s.gateway.RoleID(ctx, role.name)
		if err != nil {
			return err
		}

		columns := []string{"username", "email", "password_hash", "real_name", "status", "created_at", "updated_at"}
		var rows [][]any
		var createdAts []time.Time

		for i := 0; i < role.count; i++ {
			name := s.content.PersonName()

			username, err := tracker.ReserveName("username", Username(name), 50, usernameExists)
			if err != nil {
				if errors.Is(err, ErrKeyExhausted) {
					s.summary.Failed++
					color.Yellow("  ⚠️  Skipping user, no unique username for %q", name)
					continue
				}
				return err
			}
			email, err := tracker.ReserveWith("email", 100, emailExists, func(attempt int) string {
				local := EmailLocal(name)
				if attempt > 0 {
					local += strconv.Itoa(attempt)
				}
				return local + "@" + s.content.FreeEmailDomain()
			})
			if err != nil {
				if errors.Is(err, ErrKeyExhausted) {
					s.summary.Failed++
					color.Yellow("  ⚠️  Skipping user, no unique email for %q", name)
					continue
				}
				return err
			}

			createdAt, err := s.sampler.Between(window.Start, window.End)
			if err != nil {
				return err
			}
			status := Weighted(s.sampler, userStatusWeights)

			rows = append(rows, []any{username, email, string(hash), name, status, createdAt, createdAt})
			createdAts = append(createdAts, createdAt)
			s.summary.record("users", status)
		}

		ids, err := s.gateway.InsertBatch(ctx, "users", columns, rows)
		if err != nil {
			return err
		}

		linkRows := make([][]any, 0, len(ids))
		for i, id := range ids {
			linkRows = append(linkRows, []any{id, roleID, createdAts[i]})
		}
		if _, err := s.gateway.InsertBatch(ctx, "user_roles",
			[]string{"user_id", "role_id", "assigned_at"}, linkRows); err != nil {
			return err
		}

		color.Green("  ✅ %d %s accounts created", len(ids), role.name)
	}

	return nil
}

// activeOnly filters out inactive and soft-deleted users.
func activeOnly(users []database.UserRow) []database.UserRow {
	var out []database.UserRow
	for _, u := range users {
		if u.Status == UserActive && u.DeletedAt == nil {
			out = append(out, u)
		}
	}
	return out
}
