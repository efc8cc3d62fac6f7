package dashboard

import (
	"context"
	"database/sql"
	"fmt"

	"academia/internal/model"
)

// Repository runs the dashboard count queries.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Counts returns the totals plus attendance on day and on or after weekStart.
func (r *Repository) Counts(ctx context.Context, day, weekStart string) (model.DashboardStats, error) {
	var st model.DashboardStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM attendance WHERE date = ?),
			(SELECT COUNT(*) FROM attendance WHERE date >= ?)
	`, day, weekStart).Scan(&st.TotalStudents, &st.TotalCourses, &st.TodayAttendance, &st.WeekAttendance)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return st, nil
}
