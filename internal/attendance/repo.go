package attendance

import (
	"context"
	"database/sql"
	"fmt"

	"academia/internal/model"
)

// Repository persists attendance records in SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Mark is one attendance write, keyed by student and day.
type Mark struct {
	StudentRowID int64
	CourseID     *int64
	Date         string
	Status       string
	MarkedBy     int64
}

// Upsert writes m in a single statement. An existing row for the same student and day takes the
// new status and marker and keeps its course.
func (r *Repository) Upsert(ctx context.Context, m Mark) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance (student_id, course_id, date, status, marked_by)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (student_id, date) DO UPDATE SET
			status = excluded.status,
			marked_by = excluded.marked_by
	`, m.StudentRowID, m.CourseID, m.Date, m.Status, m.MarkedBy)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// List returns all records, newest day first and by student name within a day.
func (r *Repository) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, s.name, s.student_id, COALESCE(s.avatar, ''), a.status, a.date, c.abbreviation
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		LEFT JOIN courses c ON a.course_id = c.id
		ORDER BY a.date DESC, s.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.StudentID, &rec.Avatar, &rec.Status, &rec.Date, &rec.Course); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
