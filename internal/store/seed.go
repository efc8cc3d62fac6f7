package store

import (
	"context"
	"fmt"

	"academia/internal/auth"
)

type seedUser struct {
	name, email, password, role, avatar string
}

type seedStudent struct {
	name, code, email, avatar string
}

type seedCourse struct {
	abbr, title string
	professor   int64
	slot, room  string
	section     string
	max         int
}

var (
	sampleUsers = []seedUser{
		{"Admin User", "admin@academia.edu", "admin123", "admin", "A"},
		{"Prof. Smith", "prof.smith@academia.edu", "teacher123", "teacher", "S"},
		{"Prof. Johnson", "prof.johnson@academia.edu", "teacher456", "teacher", "J"},
		{"Prof. Williams", "prof.williams@academia.edu", "teacher789", "teacher", "W"},
	}
	sampleStudents = []seedStudent{
		{"Alex Johnson", "S123456", "alex.johnson@student.edu", "AJ"},
		{"Maria Garcia", "S789012", "maria.garcia@student.edu", "MG"},
		{"James Wilson", "S345678", "james.wilson@student.edu", "JW"},
		{"Sarah Lee", "S901234", "sarah.lee@student.edu", "SL"},
		{"Michael Brown", "S567890", "michael.brown@student.edu", "MB"},
		{"Emily Davis", "S234567", "emily.davis@student.edu", "ED"},
	}
	// professor values index sampleUsers by position (1-based ids on a fresh database)
	sampleCourses = []seedCourse{
		{"DSJ", "Data Science Junior", 2, "9:00 AM - 10:30 AM", "101", "A", 32},
		{"PMC", "Probability & Math Computing", 3, "11:00 AM - 12:30 PM", "205", "B", 28},
		{"DED", "Discrete Event Dynamics", 4, "1:30 PM - 3:00 PM", "312", "C", 45},
		{"PJW", "Project Workshop", 2, "4:00 PM - 5:30 PM", "104", "D", 18},
		{"MLD", "Machine Learning Design", 4, "10:00 AM - 11:30 AM", "215", "E", 36},
		{"WBD", "Web Development Bootcamp", 4, "2:00 PM - 3:30 PM", "107", "F", 24},
	}
)

// SeedSampleData inserts the demo users, students and courses when the users table is empty.
// It reports whether anything was inserted.
func (d *DB) SeedSampleData(ctx context.Context, bcryptCost int) (bool, error) {
	var n int
	if err := d.Client.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := d.Client.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	userIDs := make([]int64, len(sampleUsers))
	for i, u := range sampleUsers {
		hash, err := auth.HashPassword(u.password, bcryptCost)
		if err != nil {
			return false, fmt.Errorf("hash %s: %w", u.email, err)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO users (name, email, password_hash, role, avatar) VALUES (?, ?, ?, ?, ?)`,
			u.name, u.email, hash, u.role, u.avatar)
		if err != nil {
			return false, fmt.Errorf("seed user %s: %w", u.email, err)
		}
		if userIDs[i], err = res.LastInsertId(); err != nil {
			return false, err
		}
	}

	for _, s := range sampleStudents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students (name, student_id, email, avatar) VALUES (?, ?, ?, ?)`,
			s.name, s.code, s.email, s.avatar); err != nil {
			return false, fmt.Errorf("seed student %s: %w", s.code, err)
		}
	}

	for _, c := range sampleCourses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO courses (abbreviation, title, professor_id, time_slot, room, section, max_students)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.abbr, c.title, userIDs[c.professor-1], c.slot, c.room, c.section, c.max); err != nil {
			return false, fmt.Errorf("seed course %s: %w", c.abbr, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	return true, nil
}
