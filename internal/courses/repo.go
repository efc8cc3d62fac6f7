package courses

import (
	"context"
	"database/sql"
	"fmt"

	"academia/internal/model"
)

// Repository persists courses.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns all courses with their professor's name, ordered by abbreviation.
func (r *Repository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.abbreviation, c.title, c.time_slot, c.room, c.section, c.max_students, u.name
		FROM courses c
		LEFT JOIN users u ON c.professor_id = u.id
		ORDER BY c.abbreviation
	`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Abbreviation, &c.Title, &c.TimeSlot, &c.Room, &c.Section, &c.MaxStudents, &c.ProfessorName); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Scheduled returns courses that have a time slot, in insertion order.
func (r *Repository) Scheduled(ctx context.Context) ([]model.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.abbreviation, c.title, c.time_slot, c.room, u.name
		FROM courses c
		LEFT JOIN users u ON c.professor_id = u.id
		WHERE c.time_slot IS NOT NULL
		ORDER BY c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list scheduled courses: %w", err)
	}
	defer rows.Close()

	events := []model.CalendarEvent{}
	for rows.Next() {
		var (
			e           model.CalendarEvent
			abbr, title string
		)
		if err := rows.Scan(&e.ID, &abbr, &title, &e.Time, &e.Room, &e.Professor); err != nil {
			return nil, err
		}
		e.Title = abbr + " - " + title
		e.Type = "course"
		events = append(events, e)
	}
	return events, rows.Err()
}

type newCourse struct {
	abbreviation, title string
	professorID         *int64
	timeSlot, room      *string
	section             *string
	maxStudents         int
}

func (r *Repository) insert(ctx context.Context, c newCourse) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO courses (abbreviation, title, professor_id, time_slot, room, section, max_students)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.abbreviation, c.title, c.professorID, c.timeSlot, c.room, c.section, c.maxStudents)
	if err != nil {
		return 0, fmt.Errorf("insert course: %w", err)
	}
	return res.LastInsertId()
}
