package seeder

import (
	"context"
	"fmt"
	"sort"
)

// StageUsers through StageProgress name the generation stages in the order
// they appear in the hierarchy. Stage names double as CLI subcommand names.
const (
	StageUsers       = "users"
	StageCatalog     = "catalog"
	StageCurriculum  = "curriculum"
	StageEnrollments = "enrollments"
	StageRatings     = "ratings"
	StageProgress    = "progress"
)

type stageFunc func(s *Seeder, ctx context.Context) error

type stage struct {
	deps []string
	// tables holds the stage's own tables, child-first, for truncation.
	tables []string
	run    stageFunc
}

var stages = map[string]stage{
	StageUsers: {
		tables: []string{"user_roles", "users"},
		run:    (*Seeder).seedUsers,
	},
	StageCatalog: {
		deps:   []string{StageUsers},
		tables: []string{"course_categories", "courses", "categories"},
		run:    (*Seeder).seedCatalog,
	},
	StageCurriculum: {
		deps:   []string{StageCatalog},
		tables: []string{"lessons", "chapters"},
		run:    (*Seeder).seedCurriculum,
	},
	StageEnrollments: {
		deps:   []string{StageUsers, StageCatalog},
		tables: []string{"user_courses"},
		run:    (*Seeder).seedEnrollments,
	},
	StageRatings: {
		deps:   []string{StageUsers, StageCatalog},
		tables: []string{"course_ratings"},
		run:    (*Seeder).seedRatings,
	},
	StageProgress: {
		deps:   []string{StageCurriculum, StageEnrollments},
		tables: []string{"user_lesson_progress"},
		run:    (*Seeder).seedProgress,
	},
}

// StageNames returns every known stage name in dependency order.
func StageNames() []string {
	order, _ := topoOrder()
	return order
}

// ResolveStages validates the requested stage names and returns them in
// dependency order. A stage only regenerates its own tables; it reads parent
// data that is already in the store, so dependencies are not pulled in.
func ResolveStages(requested []string) ([]string, error) {
	want := make(map[string]bool)
	for _, name := range requested {
		if _, ok := stages[name]; !ok {
			return nil, fmt.Errorf("unknown stage: %s", name)
		}
		want[name] = true
	}

	full, err := topoOrder()
	if err != nil {
		return nil, err
	}

	var order []string
	for _, name := range full {
		if want[name] {
			order = append(order, name)
		}
	}
	return order, nil
}

// topoOrder sorts all stages topologically. Map iteration is randomized, so
// names are visited sorted to keep the result stable.
func topoOrder() ([]string, error) {
	names := make([]string, 0, len(stages))
	for name := range stages {
		names = append(names, name)
	}
	sort.Strings(names)

	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving stage: %s", name)
		}
		if visited[name] {
			return nil
		}

		temp[name] = true
		for _, dep := range stages[name].deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// TruncateTables returns the tables owned by the given stages, child-first
// across stages, reversing the dependency order so dependents clear before
// their parents.
func TruncateTables(orderedStages []string) []string {
	var tables []string
	for i := len(orderedStages) - 1; i >= 0; i-- {
		tables = append(tables, stages[orderedStages[i]].tables...)
	}
	return tables
}
