package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// autoIDTables lists the tables keyed by an auto-generated surrogate id.
// Link tables (user_roles, course_categories, user_courses,
// user_lesson_progress) carry composite keys and return no ids.
var autoIDTables = map[string]bool{
	"roles":          true,
	"users":          true,
	"categories":     true,
	"courses":        true,
	"chapters":       true,
	"lessons":        true,
	"course_ratings": true,
}

// SQLGateway implements Gateway over database/sql for mysql, postgresql and
// sqlite.
type SQLGateway struct {
	db       *sql.DB
	tx       *sql.Tx
	provider string
	qb       sq.StatementBuilderType
}

// Open connects to the database behind url using the driver matching
// provider and verifies the connection with a ping.
func Open(ctx context.Context, provider, url string) (*SQLGateway, error) {
	var driverName string
	var placeholder sq.PlaceholderFormat = sq.Question
	switch provider {
	case "postgresql", "postgres":
		driverName = "pgx"
		placeholder = sq.Dollar
	case "mysql":
		driverName = "mysql"
		url = normalizeMySQLURL(url)
	case "sqlite", "sqlite3":
		driverName = "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}

	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", provider, err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLGateway{
		db:       db,
		provider: provider,
		qb:       sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

// normalizeMySQLURL rewrites a mysql:// URL into the DSN form the driver
// expects (user:pass@tcp(host:port)/db).
func normalizeMySQLURL(url string) string {
	dsn := strings.TrimPrefix(url, "mysql://")
	atIndex := strings.Index(dsn, "@")
	if atIndex <= 0 || strings.Contains(dsn, "@tcp(") {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]
	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, remainder[:slashIndex], remainder[slashIndex+1:])
}

func (g *SQLGateway) Close() error {
	return g.db.Close()
}

func (g *SQLGateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *SQLGateway) Begin(ctx context.Context) error {
	if g.tx != nil {
		return fmt.Errorf("transaction already open")
	}
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	g.tx = tx
	return nil
}

func (g *SQLGateway) Commit(ctx context.Context) error {
	if g.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	err := g.tx.Commit()
	g.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (g *SQLGateway) Rollback(ctx context.Context) error {
	if g.tx == nil {
		return nil
	}
	err := g.tx.Rollback()
	g.tx = nil
	if err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// runner routes statements through the open transaction when there is one.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (g *SQLGateway) runner() runner {
	if g.tx != nil {
		return g.tx
	}
	return g.db
}

func (g *SQLGateway) Truncate(ctx context.Context, tables ...string) error {
	switch g.provider {
	case "mysql":
		if _, err := g.runner().ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
			return fmt.Errorf("failed to disable foreign key checks: %w", err)
		}
		for _, table := range tables {
			if _, err := g.runner().ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
				return fmt.Errorf("failed to truncate %s: %w", table, err)
			}
		}
		if _, err := g.runner().ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err != nil {
			return fmt.Errorf("failed to re-enable foreign key checks: %w", err)
		}
	case "postgresql", "postgres":
		stmt := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
		if _, err := g.runner().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}
	default: // sqlite
		for _, table := range tables {
			if _, err := g.runner().ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
			g.runner().ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = '"+table+"'")
		}
	}
	return nil
}

func (g *SQLGateway) InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) ([]int64, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	wantIDs := autoIDTables[table]

	// Postgres returns ids from a single multi-row statement; the other
	// providers report ids per statement, so insert row by row there.
	if (g.provider == "postgresql" || g.provider == "postgres") && wantIDs {
		builder := g.qb.Insert(table).Columns(columns...).Suffix("RETURNING id")
		for _, row := range rows {
			builder = builder.Values(row...)
		}
		query, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		result, err := g.runner().QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		defer result.Close()

		ids := make([]int64, 0, len(rows))
		for result.Next() {
			var id int64
			if err := result.Scan(&id); err != nil {
				return nil, fmt.Errorf("failed to scan returned id: %w", err)
			}
			ids = append(ids, id)
		}
		return ids, result.Err()
	}

	var ids []int64
	for _, row := range rows {
		query, args, err := g.qb.Insert(table).Columns(columns...).Values(row...).ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		res, err := g.runner().ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		if wantIDs {
			id, err := res.LastInsertId()
			if err != nil {
				return nil, fmt.Errorf("failed to read inserted id for %s: %w", table, err)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (g *SQLGateway) Count(ctx context.Context, table string, filters map[string]any) (int, error) {
	builder := g.qb.Select("COUNT(*)").From(table)
	if len(filters) > 0 {
		builder = builder.Where(sq.Eq(filters))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count for %s: %w", table, err)
	}
	var count int
	if err := g.runner().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

func (g *SQLGateway) RoleID(ctx context.Context, name string) (int64, error) {
	query, args, err := g.qb.Select("id").From("roles").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build role lookup: %w", err)
	}
	var id int64
	if err := g.runner().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to look up role %s: %w", name, err)
	}
	return id, nil
}

func (g *SQLGateway) UsersByRole(ctx context.Context, role string) ([]UserRow, error) {
	query, args, err := g.qb.
		Select("u.id", "u.username", "u.status", "u.created_at", "u.deleted_at").
		From("users u").
		Join("user_roles ur ON u.id = ur.user_id").
		Join("roles r ON ur.role_id = r.id").
		Where(sq.Eq{"r.name": role}).
		OrderBy("u.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}

	rows, err := g.runner().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users with role %s: %w", role, err)
	}
	defer rows.Close()

	var users []UserRow
	for rows.Next() {
		var u UserRow
		var deletedAt sql.NullTime
		if err := rows.Scan(&u.ID, &u.Username, &u.Status, &u.CreatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		if deletedAt.Valid {
			u.DeletedAt = &deletedAt.Time
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (g *SQLGateway) Courses(ctx context.Context) ([]CourseRow, error) {
	query, args, err := g.qb.
		Select("id", "title", "status", "created_at", "deleted_at").
		From("courses").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build courses query: %w", err)
	}

	rows, err := g.runner().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []CourseRow
	for rows.Next() {
		var c CourseRow
		var deletedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Title, &c.Status, &c.CreatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		if deletedAt.Valid {
			c.DeletedAt = &deletedAt.Time
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (g *SQLGateway) CourseLessons(ctx context.Context, courseID int64) ([]LessonRef, error) {
	query, args, err := g.qb.
		Select("l.id", "l.chapter_id", "ch.course_id", "ch.order_number", "l.order_number").
		From("lessons l").
		Join("chapters ch ON l.chapter_id = ch.id").
		Where(sq.Eq{"ch.course_id": courseID, "l.deleted_at": nil, "ch.deleted_at": nil}).
		OrderBy("ch.order_number", "l.order_number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lessons query: %w", err)
	}

	rows, err := g.runner().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons for course %d: %w", courseID, err)
	}
	defer rows.Close()

	var lessons []LessonRef
	for rows.Next() {
		var l LessonRef
		if err := rows.Scan(&l.LessonID, &l.ChapterID, &l.CourseID, &l.ChapterOrder, &l.LessonOrder); err != nil {
			return nil, fmt.Errorf("failed to scan lesson row: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (g *SQLGateway) ActiveEnrollments(ctx context.Context) ([]EnrollmentRow, error) {
	query, args, err := g.qb.
		Select("uc.user_id", "uc.course_id", "uc.status", "uc.enrollment_date",
			"uc.completion_date", "u.username", "c.title").
		From("user_courses uc").
		Join("users u ON uc.user_id = u.id").
		Join("courses c ON uc.course_id = c.id").
		Where(sq.NotEq{"uc.status": "DROPPED"}).
		OrderBy("uc.enrollment_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollments query: %w", err)
	}

	rows, err := g.runner().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []EnrollmentRow
	for rows.Next() {
		var e EnrollmentRow
		var completedAt sql.NullTime
		if err := rows.Scan(&e.UserID, &e.CourseID, &e.Status, &e.EnrolledAt,
			&completedAt, &e.Username, &e.CourseTitle); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		if completedAt.Valid {
			e.CompletedAt = &completedAt.Time
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (g *SQLGateway) LessonPathExists(ctx context.Context, lessonID, chapterID, courseID int64) (bool, error) {
	query, args, err := g.qb.
		Select("COUNT(1)").
		From("lessons l").
		Join("chapters ch ON l.chapter_id = ch.id").
		Where(sq.Eq{
			"l.id":          lessonID,
			"l.chapter_id":  chapterID,
			"ch.course_id":  courseID,
			"l.deleted_at":  nil,
			"ch.deleted_at": nil,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build lesson path query: %w", err)
	}
	var count int
	if err := g.runner().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to verify lesson path: %w", err)
	}
	return count > 0, nil
}
