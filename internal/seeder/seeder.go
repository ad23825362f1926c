package seeder

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/openlms/seedgen/internal/config"
	"github.com/openlms/seedgen/internal/database"
)

// Seeder drives the generation stages against one database connection. A run
// truncates the selected stages' tables first, then inserts inside a single
// transaction so a fatal error leaves the truncated tables empty rather than
// half-filled.
type Seeder struct {
	config  *config.Config
	gateway database.Gateway
	sampler *Sampler
	status  *StatusResolver
	content *Content
	now     time.Time
	summary *Summary
}

func NewSeeder(cfg *config.Config, gateway database.Gateway, seed int64) *Seeder {
	sampler := NewSampler(seed)
	return &Seeder{
		config:  cfg,
		gateway: gateway,
		sampler: sampler,
		status:  NewStatusResolver(sampler),
		content: NewContent(sampler),
		now:     time.Now(),
	}
}

func (s *Seeder) Close() error {
	return s.gateway.Close()
}

// Run executes the requested stages in dependency order and returns a
// summary of what was written.
func (s *Seeder) Run(ctx context.Context, requested []string) (*Summary, error) {
	order, err := ResolveStages(requested)
	if err != nil {
		return nil, err
	}

	s.summary = &Summary{
		RunID:     uuid.NewString(),
		Stages:    order,
		ByStatus:  make(map[string]int),
		StartedAt: s.now,
	}

	color.Cyan("🌱 Starting seed run %s", s.summary.RunID)
	color.Cyan("📋 Stage order: %s", strings.Join(order, " → "))
	fmt.Println()

	// Truncate outside the transaction: mysql TRUNCATE commits implicitly
	// and would tear the insert transaction apart.
	tables := TruncateTables(order)
	color.Yellow("🗑️  Clearing %s...", strings.Join(tables, ", "))
	if err := s.gateway.Truncate(ctx, tables...); err != nil {
		return nil, fmt.Errorf("failed to clear tables: %w", err)
	}

	if err := s.gateway.Begin(ctx); err != nil {
		return nil, err
	}

	for _, name := range order {
		color.Cyan("  📝 Seeding %s...", name)
		if err := stages[name].run(s, ctx); err != nil {
			color.Yellow("🔄 Rolling back after failure in %s...", name)
			if rbErr := s.gateway.Rollback(ctx); rbErr != nil {
				return nil, fmt.Errorf("stage %s failed and rollback failed: %v (original: %w)", name, rbErr, err)
			}
			return nil, fmt.Errorf("stage %s failed: %w", name, err)
		}
	}

	if err := s.gateway.Commit(ctx); err != nil {
		s.gateway.Rollback(ctx)
		return nil, err
	}

	s.summary.FinishedAt = time.Now()
	color.Green("\n✅ Seed run completed: %d rows created, %d skipped", s.summary.Created, s.summary.Failed)
	return s.summary, nil
}

// WriteReport writes the run summary to path as YAML.
func (s *Summary) WriteReport(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
