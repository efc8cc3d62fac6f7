package students

import (
	"context"
	"strings"

	"academia/internal/apperr"
	"academia/internal/avatar"
	"academia/internal/model"
	"academia/internal/store"
)

// CreateInput carries the fields of a new student.
type CreateInput struct {
	Name      string
	StudentID string
	Email     string
}

// Service validates and creates students.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns every student ordered by name.
func (s *Service) List(ctx context.Context) ([]model.Student, error) {
	return s.repo.List(ctx)
}

// Create inserts a student and returns its row id. Student codes are unique.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	st := model.Student{
		Name:      strings.TrimSpace(in.Name),
		StudentID: strings.TrimSpace(in.StudentID),
	}
	if st.Name == "" || st.StudentID == "" {
		return 0, apperr.Validation("Name and student ID are required")
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		st.Email = &email
	}
	st.Avatar = avatar.Initials(st.Name, 2)

	_, exists, err := s.repo.IDByCode(ctx, st.StudentID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperr.Conflict("Student ID already exists")
	}
	id, err := s.repo.insert(ctx, st)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return 0, apperr.Conflict("Student ID already exists")
		}
		return 0, apperr.Internal("insert student", err)
	}
	return id, nil
}
