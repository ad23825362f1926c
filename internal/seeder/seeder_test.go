package seeder

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlms/seedgen/internal/config"
	"github.com/openlms/seedgen/internal/database"
)

type fakeRow map[string]any

// fakeGateway keeps everything in memory and answers the same queries the
// SQL gateway does. It ignores transactions beyond counting them.
type fakeGateway struct {
	tables  map[string][]fakeRow
	nextID  map[string]int64
	roleIDs map[string]int64

	truncated  [][]string
	begun      int
	committed  int
	rolledBack int

	failOnInsert  string
	brokenLessons map[int64]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		tables:        make(map[string][]fakeRow),
		nextID:        make(map[string]int64),
		roleIDs:       map[string]int64{RoleUser: 1, RoleInstructor: 2},
		brokenLessons: make(map[int64]bool),
	}
}

var fakeAutoID = map[string]bool{
	"users": true, "categories": true, "courses": true,
	"chapters": true, "lessons": true, "course_ratings": true,
}

func (g *fakeGateway) Close() error                   { return nil }
func (g *fakeGateway) Ping(ctx context.Context) error { return nil }

func (g *fakeGateway) Begin(ctx context.Context) error    { g.begun++; return nil }
func (g *fakeGateway) Commit(ctx context.Context) error   { g.committed++; return nil }
func (g *fakeGateway) Rollback(ctx context.Context) error { g.rolledBack++; return nil }

func (g *fakeGateway) Truncate(ctx context.Context, tables ...string) error {
	g.truncated = append(g.truncated, tables)
	for _, t := range tables {
		g.tables[t] = nil
	}
	return nil
}

func (g *fakeGateway) InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) ([]int64, error) {
	if table == g.failOnInsert {
		return nil, fmt.Errorf("simulated insert failure on %s", table)
	}
	var ids []int64
	for _, values := range rows {
		row := fakeRow{}
		for i, col := range columns {
			row[col] = values[i]
		}
		if fakeAutoID[table] {
			g.nextID[table]++
			row["id"] = g.nextID[table]
			ids = append(ids, g.nextID[table])
		}
		g.tables[table] = append(g.tables[table], row)
	}
	return ids, nil
}

func (g *fakeGateway) Count(ctx context.Context, table string, filters map[string]any) (int, error) {
	n := 0
	for _, row := range g.tables[table] {
		match := true
		for col, want := range filters {
			if row[col] != want {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n, nil
}

func (g *fakeGateway) RoleID(ctx context.Context, name string) (int64, error) {
	id, ok := g.roleIDs[name]
	if !ok {
		return 0, fmt.Errorf("role %s not found", name)
	}
	return id, nil
}

func asTimePtr(v any) *time.Time {
	switch t := v.(type) {
	case *time.Time:
		return t
	case time.Time:
		return &t
	default:
		return nil
	}
}

func (g *fakeGateway) UsersByRole(ctx context.Context, role string) ([]database.UserRow, error) {
	roleID := g.roleIDs[role]
	members := map[int64]bool{}
	for _, link := range g.tables["user_roles"] {
		if link["role_id"].(int64) == roleID {
			members[link["user_id"].(int64)] = true
		}
	}
	var out []database.UserRow
	for _, u := range g.tables["users"] {
		if !members[u["id"].(int64)] {
			continue
		}
		out = append(out, database.UserRow{
			ID:        u["id"].(int64),
			Username:  u["username"].(string),
			Status:    u["status"].(string),
			CreatedAt: u["created_at"].(time.Time),
			DeletedAt: asTimePtr(u["deleted_at"]),
		})
	}
	return out, nil
}

func (g *fakeGateway) Courses(ctx context.Context) ([]database.CourseRow, error) {
	var out []database.CourseRow
	for _, c := range g.tables["courses"] {
		out = append(out, database.CourseRow{
			ID:        c["id"].(int64),
			Title:     c["title"].(string),
			Status:    c["status"].(string),
			CreatedAt: c["created_at"].(time.Time),
			DeletedAt: asTimePtr(c["deleted_at"]),
		})
	}
	return out, nil
}

func (g *fakeGateway) chapterByID(id int64) fakeRow {
	for _, ch := range g.tables["chapters"] {
		if ch["id"].(int64) == id {
			return ch
		}
	}
	return nil
}

func (g *fakeGateway) CourseLessons(ctx context.Context, courseID int64) ([]database.LessonRef, error) {
	var out []database.LessonRef
	for _, l := range g.tables["lessons"] {
		if asTimePtr(l["deleted_at"]) != nil {
			continue
		}
		ch := g.chapterByID(l["chapter_id"].(int64))
		if ch == nil || ch["course_id"].(int64) != courseID || asTimePtr(ch["deleted_at"]) != nil {
			continue
		}
		out = append(out, database.LessonRef{
			LessonID:     l["id"].(int64),
			ChapterID:    ch["id"].(int64),
			CourseID:     courseID,
			ChapterOrder: ch["order_number"].(int),
			LessonOrder:  l["order_number"].(int),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChapterOrder != out[j].ChapterOrder {
			return out[i].ChapterOrder < out[j].ChapterOrder
		}
		return out[i].LessonOrder < out[j].LessonOrder
	})
	return out, nil
}

func (g *fakeGateway) ActiveEnrollments(ctx context.Context) ([]database.EnrollmentRow, error) {
	var out []database.EnrollmentRow
	for _, e := range g.tables["user_courses"] {
		if e["status"].(string) == EnrollmentDropped {
			continue
		}
		out = append(out, database.EnrollmentRow{
			UserID:      e["user_id"].(int64),
			CourseID:    e["course_id"].(int64),
			Status:      e["status"].(string),
			EnrolledAt:  e["enrollment_date"].(time.Time),
			CompletedAt: asTimePtr(e["completion_date"]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrolledAt.Before(out[j].EnrolledAt) })
	return out, nil
}

func (g *fakeGateway) LessonPathExists(ctx context.Context, lessonID, chapterID, courseID int64) (bool, error) {
	if g.brokenLessons[lessonID] {
		return false, nil
	}
	for _, l := range g.tables["lessons"] {
		if l["id"].(int64) != lessonID || l["chapter_id"].(int64) != chapterID {
			continue
		}
		ch := g.chapterByID(chapterID)
		return ch != nil && ch["course_id"].(int64) == courseID, nil
	}
	return false, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Database: config.Database{Provider: "mysql", URLEnv: "DATABASE_URL"},
		Targets: config.Targets{
			Students: 5, Instructors: 3, Categories: 8, Courses: 10,
			Chapters: 20, Lessons: 40, Ratings: 12,
			MinEnrollmentsPerUser: 2, MaxEnrollmentsPerUser: 4,
		},
		Password: "test-password",
	}
}

func runAll(t *testing.T, gw *fakeGateway) *Summary {
	t.Helper()
	s := NewSeeder(testConfig(), gw, 424242)
	summary, err := s.Run(context.Background(), StageNames())
	require.NoError(t, err)
	return summary
}

func TestRunSeedsEverything(t *testing.T) {
	gw := newFakeGateway()
	summary := runAll(t, gw)

	assert.Len(t, gw.tables["users"], 8)
	assert.Len(t, gw.tables["user_roles"], 8)
	assert.Len(t, gw.tables["categories"], 8)
	assert.Len(t, gw.tables["courses"], 10)
	assert.NotEmpty(t, gw.tables["chapters"])
	assert.NotEmpty(t, gw.tables["lessons"])

	assert.Equal(t, 1, gw.begun)
	assert.Equal(t, 1, gw.committed)
	assert.Zero(t, gw.rolledBack)
	require.Len(t, gw.truncated, 1)
	assert.NotEmpty(t, summary.RunID)
	assert.Positive(t, summary.Created)
}

func TestRunChildrenStayInsideParentWindows(t *testing.T) {
	gw := newFakeGateway()
	runAll(t, gw)

	courses := map[int64]fakeRow{}
	for _, c := range gw.tables["courses"] {
		courses[c["id"].(int64)] = c
	}

	for _, ch := range gw.tables["chapters"] {
		course := courses[ch["course_id"].(int64)]
		created := ch["created_at"].(time.Time)
		updated := ch["updated_at"].(time.Time)

		courseCreated := course["created_at"].(time.Time)
		// The degenerate clamp may pull a child at most one unit before its
		// parent's creation.
		assert.False(t, created.Before(courseCreated.Add(-clampUnit)))
		assert.False(t, updated.Before(created))

		if stop := asTimePtr(course["deleted_at"]); stop != nil {
			assert.False(t, created.After(*stop))
			assert.False(t, updated.After(*stop))
		}
	}

	chapters := map[int64]fakeRow{}
	for _, ch := range gw.tables["chapters"] {
		chapters[ch["id"].(int64)] = ch
	}
	for _, l := range gw.tables["lessons"] {
		ch := chapters[l["chapter_id"].(int64)]
		created := l["created_at"].(time.Time)
		updated := l["updated_at"].(time.Time)

		chCreated := ch["created_at"].(time.Time)
		chUpdated := ch["updated_at"].(time.Time)
		assert.False(t, created.Before(chCreated.Add(-clampUnit)))
		assert.False(t, updated.After(chUpdated))
	}
}

func TestRunArchivedCascades(t *testing.T) {
	gw := newFakeGateway()
	runAll(t, gw)

	archivedCourses := map[int64]bool{}
	for _, c := range gw.tables["courses"] {
		if c["status"].(string) == StatusArchived {
			archivedCourses[c["id"].(int64)] = true
			assert.NotNil(t, asTimePtr(c["deleted_at"]))
		}
	}
	require.NotEmpty(t, archivedCourses, "fixed seed should produce archived courses")

	archivedChapters := map[int64]bool{}
	for _, ch := range gw.tables["chapters"] {
		if ch["status"].(string) == StatusArchived {
			archivedChapters[ch["id"].(int64)] = true
		}
		if archivedCourses[ch["course_id"].(int64)] {
			assert.Equal(t, StatusArchived, ch["status"].(string))
		}
	}
	for _, l := range gw.tables["lessons"] {
		if archivedChapters[l["chapter_id"].(int64)] {
			assert.Equal(t, StatusArchived, l["status"].(string))
		}
	}
}

func TestRunOrderNumbersContiguous(t *testing.T) {
	gw := newFakeGateway()
	runAll(t, gw)

	byCourse := map[int64][]int{}
	for _, ch := range gw.tables["chapters"] {
		byCourse[ch["course_id"].(int64)] = append(byCourse[ch["course_id"].(int64)], ch["order_number"].(int))
	}
	for courseID, orders := range byCourse {
		sort.Ints(orders)
		for i, n := range orders {
			assert.Equal(t, i+1, n, "course %d has a gap in chapter order", courseID)
		}
	}
}

func TestRunEnrollmentInvariants(t *testing.T) {
	gw := newFakeGateway()
	runAll(t, gw)

	users := map[int64]fakeRow{}
	for _, u := range gw.tables["users"] {
		users[u["id"].(int64)] = u
	}
	courses := map[int64]fakeRow{}
	for _, c := range gw.tables["courses"] {
		courses[c["id"].(int64)] = c
	}

	require.NotEmpty(t, gw.tables["user_courses"])
	seen := map[[2]int64]bool{}
	for _, e := range gw.tables["user_courses"] {
		userID := e["user_id"].(int64)
		courseID := e["course_id"].(int64)

		key := [2]int64{userID, courseID}
		assert.False(t, seen[key], "duplicate enrollment pair %v", key)
		seen[key] = true

		// Only active students in published courses.
		assert.Equal(t, UserActive, users[userID]["status"].(string))
		assert.Equal(t, StatusPublished, courses[courseID]["status"].(string))

		enrolledAt := e["enrollment_date"].(time.Time)
		assert.False(t, enrolledAt.Before(users[userID]["created_at"].(time.Time)))
		assert.False(t, enrolledAt.Before(courses[courseID]["created_at"].(time.Time)))

		status := e["status"].(string)
		completedAt := asTimePtr(e["completion_date"])
		if status == EnrollmentCompleted {
			require.NotNil(t, completedAt)
			assert.False(t, completedAt.Before(enrolledAt))
		} else {
			assert.Nil(t, completedAt)
		}
	}
}

func TestRunEnrollmentsWithFewPublishedCourses(t *testing.T) {
	gw := newFakeGateway()
	ctx := context.Background()
	created := time.Now().AddDate(0, -6, 0)

	// One student, one published course, minimum two enrollments per user:
	// the draw must cap at the course pool instead of slicing past it.
	userIDs, err := gw.InsertBatch(ctx, "users",
		[]string{"username", "email", "status", "created_at", "deleted_at"},
		[][]any{{"solo.student", "solo@example.com", UserActive, created, nil}})
	require.NoError(t, err)
	_, err = gw.InsertBatch(ctx, "user_roles",
		[]string{"user_id", "role_id"}, [][]any{{userIDs[0], int64(1)}})
	require.NoError(t, err)
	_, err = gw.InsertBatch(ctx, "courses",
		[]string{"title", "status", "created_at", "deleted_at"},
		[][]any{{"The Only Course", StatusPublished, created, nil}})
	require.NoError(t, err)

	s := NewSeeder(testConfig(), gw, 424242)
	_, err = s.Run(ctx, []string{StageEnrollments})
	require.NoError(t, err)

	require.Len(t, gw.tables["user_courses"], 1)
	e := gw.tables["user_courses"][0]
	assert.Equal(t, userIDs[0], e["user_id"].(int64))
}

func TestRunRatingInvariants(t *testing.T) {
	gw := newFakeGateway()
	runAll(t, gw)

	courses := map[int64]fakeRow{}
	for _, c := range gw.tables["courses"] {
		courses[c["id"].(int64)] = c
	}

	require.NotEmpty(t, gw.tables["course_ratings"])
	seen := map[[2]int64]bool{}
	for _, r := range gw.tables["course_ratings"] {
		key := [2]int64{r["user_id"].(int64), r["course_id"].(int64)}
		assert.False(t, seen[key], "duplicate rating pair %v", key)
		seen[key] = true

		stars := r["rating"].(int)
		assert.GreaterOrEqual(t, stars, 1)
		assert.LessOrEqual(t, stars, 5)

		course := courses[r["course_id"].(int64)]
		assert.NotEqual(t, StatusArchived, course["status"].(string))
		assert.False(t, r["created_at"].(time.Time).Before(course["created_at"].(time.Time)))
	}
}

func TestRunProgressInvariants(t *testing.T) {
	gw := newFakeGateway()
	runAll(t, gw)

	enrollments := map[[2]int64]fakeRow{}
	for _, e := range gw.tables["user_courses"] {
		enrollments[[2]int64{e["user_id"].(int64), e["course_id"].(int64)}] = e
	}

	require.NotEmpty(t, gw.tables["user_lesson_progress"])
	for _, p := range gw.tables["user_lesson_progress"] {
		e := enrollments[[2]int64{p["user_id"].(int64), p["course_id"].(int64)}]
		require.NotNil(t, e, "progress row without enrollment")
		assert.NotEqual(t, EnrollmentDropped, e["status"].(string))

		enrolledAt := e["enrollment_date"].(time.Time)
		accessedAt := p["last_accessed_at"].(time.Time)
		assert.False(t, accessedAt.Before(enrolledAt.Add(-clampUnit)))

		completedAt := asTimePtr(p["completion_date"])
		if p["status"].(string) != ProgressCompleted {
			assert.Nil(t, completedAt)
		}
		if completedAt != nil {
			courseCompleted := asTimePtr(e["completion_date"])
			require.NotNil(t, courseCompleted)
			assert.False(t, completedAt.After(*courseCompleted))
			assert.False(t, completedAt.Before(accessedAt))
		}
	}
}

func TestRunIsIdempotentPerStage(t *testing.T) {
	gw := newFakeGateway()
	runAll(t, gw)
	firstUsers := len(gw.tables["users"])

	// A second run truncates and repopulates; nothing accumulates.
	s := NewSeeder(testConfig(), gw, 777)
	_, err := s.Run(context.Background(), []string{StageUsers})
	require.NoError(t, err)

	assert.Len(t, gw.tables["users"], firstUsers)
	assert.Len(t, gw.tables["user_roles"], firstUsers)
}

func TestRunRollsBackOnFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.failOnInsert = "users"

	s := NewSeeder(testConfig(), gw, 424242)
	_, err := s.Run(context.Background(), []string{StageUsers})

	require.Error(t, err)
	assert.ErrorContains(t, err, "users")
	assert.Equal(t, 1, gw.rolledBack)
	assert.Zero(t, gw.committed)
}

func TestRunSkipsBrokenLessonChains(t *testing.T) {
	gw := newFakeGateway()
	runAll(t, gw)

	// Break a lesson in a course someone is actually enrolled in, then
	// regenerate progress only.
	enrollments, err := gw.ActiveEnrollments(context.Background())
	require.NoError(t, err)

	var victim int64
	for _, e := range enrollments {
		lessons, err := gw.CourseLessons(context.Background(), e.CourseID)
		require.NoError(t, err)
		if len(lessons) > 0 {
			victim = lessons[0].LessonID
			break
		}
	}
	require.NotZero(t, victim, "expected an enrolled course with lessons")
	gw.brokenLessons[victim] = true

	s := NewSeeder(testConfig(), gw, 424242)
	summary, err := s.Run(context.Background(), []string{StageProgress})
	require.NoError(t, err)

	assert.Positive(t, summary.Failed)
	for _, p := range gw.tables["user_lesson_progress"] {
		assert.NotEqual(t, victim, p["lesson_id"].(int64))
	}
}
