package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academia/internal/model"
)

// Repository persists students.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns all students ordered by name.
func (r *Repository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, student_id, email, COALESCE(avatar, '')
		FROM students
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.StudentID, &s.Email, &s.Avatar); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// IDByCode resolves an external student code to the row id. ok is false when no student has the code.
func (r *Repository) IDByCode(ctx context.Context, code string) (id int64, ok bool, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT id FROM students WHERE student_id = ?`, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup student %s: %w", code, err)
	}
	return id, true, nil
}

func (r *Repository) insert(ctx context.Context, s model.Student) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO students (name, student_id, email, avatar)
		VALUES (?, ?, ?, ?)
	`, s.Name, s.StudentID, s.Email, s.Avatar)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
