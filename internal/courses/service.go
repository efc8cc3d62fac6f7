package courses

import (
	"context"
	"strings"

	"academia/internal/apperr"
	"academia/internal/model"
)

// DefaultMaxStudents applies when a course is created without a capacity.
const DefaultMaxStudents = 30

// CreateInput carries the fields of a new course. Nil pointers are stored as NULL.
type CreateInput struct {
	Abbreviation string
	Title        string
	ProfessorID  *int64
	TimeSlot     *string
	Room         *string
	Section      *string
	MaxStudents  *int
}

// Service validates and creates courses and derives calendar events from them.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns every course ordered by abbreviation.
func (s *Service) List(ctx context.Context) ([]model.Course, error) {
	return s.repo.List(ctx)
}

// Create inserts a course and returns its row id.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	c := newCourse{
		abbreviation: strings.TrimSpace(in.Abbreviation),
		title:        strings.TrimSpace(in.Title),
		professorID:  in.ProfessorID,
		timeSlot:     in.TimeSlot,
		room:         in.Room,
		section:      in.Section,
		maxStudents:  DefaultMaxStudents,
	}
	if c.abbreviation == "" || c.title == "" {
		return 0, apperr.Validation("Abbreviation and title are required")
	}
	if in.MaxStudents != nil {
		if *in.MaxStudents < 0 {
			return 0, apperr.Validation("max_students must not be negative")
		}
		c.maxStudents = *in.MaxStudents
	}
	return s.repo.insert(ctx, c)
}

// CalendarEvents returns one event per course with a time slot, titled "ABBR - Title".
func (s *Service) CalendarEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	return s.repo.Scheduled(ctx)
}
