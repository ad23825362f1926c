package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

func TestResolveStagesOrdersByDependency(t *testing.T) {
	order, err := ResolveStages([]string{StageProgress, StageUsers, StageCurriculum, StageCatalog})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{StageUsers, StageCatalog, StageCurriculum, StageProgress}, order)
	assert.Less(t, indexOf(order, StageUsers), indexOf(order, StageCatalog))
	assert.Less(t, indexOf(order, StageCatalog), indexOf(order, StageCurriculum))
	assert.Less(t, indexOf(order, StageCurriculum), indexOf(order, StageProgress))
}

func TestResolveStagesDoesNotPullDependencies(t *testing.T) {
	order, err := ResolveStages([]string{StageProgress})
	require.NoError(t, err)

	// A single stage regenerates only its own tables against existing data.
	assert.Equal(t, []string{StageProgress}, order)
}

func TestResolveStagesUnknown(t *testing.T) {
	_, err := ResolveStages([]string{"quizzes"})
	assert.ErrorContains(t, err, "unknown stage")
}

func TestStageNamesCoverEverything(t *testing.T) {
	names := StageNames()
	assert.Len(t, names, len(stages))
	assert.Equal(t, StageUsers, names[0])
}

func TestTruncateTablesReversesStageOrder(t *testing.T) {
	tables := TruncateTables(StageNames())

	// Dependents clear before their parents: lessons and chapters before
	// courses, courses before users.
	assert.Less(t, indexOf(tables, "lessons"), indexOf(tables, "courses"))
	assert.Less(t, indexOf(tables, "courses"), indexOf(tables, "users"))
	assert.Less(t, indexOf(tables, "user_roles"), indexOf(tables, "users"))
}
