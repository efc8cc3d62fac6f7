package attendance

import (
	"context"
	"strings"
	"time"

	"academia/internal/apperr"
	"academia/internal/model"
)

// DateLayout is how attendance days are stored and compared.
const DateLayout = "2006-01-02"

// StudentResolver maps an external student code to its row id.
type StudentResolver interface {
	IDByCode(ctx context.Context, code string) (int64, bool, error)
}

// MarkInput is a request to mark one student for today.
type MarkInput struct {
	StudentCode string
	Status      string
	CourseID    *int64
}

// Service records attendance, one record per student per calendar day.
type Service struct {
	repo     *Repository
	students StudentResolver
	now      func() time.Time
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository, students StudentResolver) *Service {
	return &Service{repo: repo, students: students, now: time.Now}
}

// Mark records in.Status for the student on today's date, replacing any earlier mark for the day.
// It returns the stored status.
func (s *Service) Mark(ctx context.Context, in MarkInput, markedBy model.User) (string, error) {
	code := strings.TrimSpace(in.StudentCode)
	status := strings.TrimSpace(in.Status)
	if code == "" || status == "" {
		return "", apperr.Validation("Student ID and status are required")
	}

	rowID, ok, err := s.students.IDByCode(ctx, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("Student not found")
	}

	err = s.repo.Upsert(ctx, Mark{
		StudentRowID: rowID,
		CourseID:     in.CourseID,
		Date:         s.now().Format(DateLayout),
		Status:       status,
		MarkedBy:     markedBy.ID,
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// List returns every attendance record joined with student and course.
func (s *Service) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	return s.repo.List(ctx)
}
