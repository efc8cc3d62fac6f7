package users

import (
	"context"
	"strings"

	"academia/internal/apperr"
	"academia/internal/auth"
	"academia/internal/avatar"
	"academia/internal/model"
	"academia/internal/store"
)

const defaultRole = "user"

// Session is the result of a successful register or login.
type Session struct {
	Token auth.Token
	User  model.User
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// ProfileUpdate holds optional profile fields; nil or blank keeps the stored value.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}

// Service handles registration, login and profile edits.
type Service struct {
	repo       *Repository
	signer     *auth.Signer
	bcryptCost int
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository, signer *auth.Signer, bcryptCost int) *Service {
	return &Service{repo: repo, signer: signer, bcryptCost: bcryptCost}
}

// Register creates an account and signs a token for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return Session{}, apperr.Validation("Name, email, and password are required")
	}
	if in.Role == "" {
		in.Role = defaultRole
	}

	existing, err := s.repo.getByEmail(ctx, in.Email)
	if err != nil {
		return Session{}, err
	}
	if existing != nil {
		return Session{}, apperr.Conflict("User with this email already exists")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return Session{}, apperr.Internal("hash password", err)
	}
	a := account{
		User: model.User{
			Name:   in.Name,
			Email:  in.Email,
			Role:   in.Role,
			Avatar: avatar.Initials(in.Name, 1),
		},
		PasswordHash: hash,
	}
	id, err := s.repo.insert(ctx, a)
	if err != nil {
		// lost a race with a concurrent registration of the same email
		if store.IsUniqueViolation(err) {
			return Session{}, apperr.Conflict("User with this email already exists")
		}
		return Session{}, apperr.Internal("insert user", err)
	}
	a.ID = id
	return s.session(a.User)
}

// Login verifies credentials and signs a token.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, apperr.Validation("Email and password are required")
	}
	a, err := s.repo.getByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if a == nil || !auth.CheckPassword(a.PasswordHash, password) {
		return Session{}, apperr.Auth("Invalid email or password")
	}
	return s.session(a.User)
}

// UpdateProfile applies upd to the user and returns the stored record.
func (s *Service) UpdateProfile(ctx context.Context, current model.User, upd ProfileUpdate) (model.User, error) {
	name, av := current.Name, current.Avatar
	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		name = strings.TrimSpace(*upd.Name)
	}
	if upd.Avatar != nil && strings.TrimSpace(*upd.Avatar) != "" {
		av = strings.TrimSpace(*upd.Avatar)
	}
	if err := s.repo.updateProfile(ctx, current.ID, name, av); err != nil {
		return model.User{}, err
	}
	u, err := s.repo.GetByID(ctx, current.ID)
	if err != nil {
		return model.User{}, err
	}
	if u == nil {
		return model.User{}, apperr.NotFound("User not found")
	}
	return *u, nil
}

func (s *Service) session(u model.User) (Session, error) {
	tok, err := s.signer.Issue(u.ID, u.Email)
	if err != nil {
		return Session{}, apperr.Internal("issue token", err)
	}
	return Session{Token: tok, User: u}, nil
}
