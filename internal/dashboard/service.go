package dashboard

import (
	"context"
	"time"

	"academia/internal/attendance"
	"academia/internal/model"
)

// Service computes dashboard statistics for the current day and week.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Stats returns student, course and attendance counts. Weeks start on Monday.
func (s *Service) Stats(ctx context.Context) (model.DashboardStats, error) {
	now := s.now()
	return s.repo.Counts(ctx, now.Format(attendance.DateLayout), WeekStart(now).Format(attendance.DateLayout))
}

// WeekStart returns the Monday of the week containing t, at t's time of day.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
