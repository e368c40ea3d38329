package service

import (
	"context"

	"placement/internal/models"
	"placement/internal/store"
	"placement/internal/validation"
)

// AuthService handles login, registration, and the single persisted session.
type AuthService struct {
	d *Deps
}

// NewAuthService returns a new AuthService.
func NewAuthService(d *Deps) *AuthService {
	return &AuthService{d: d}
}

// RegisterInput carries the fields for a new account. Exactly one of Student
// or Company may be set, and it must match Role; admins carry neither.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	Phone    string
	Student  *models.StudentProfile
	Company  *models.CompanyProfile
}

// Login scans users for an exact (email, password, role) match, persists the
// match as the session, and returns it. The stored password is compared
// verbatim. Deactivated accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	users, err := store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
	if err != nil {
		return nil, err
	}

	for i := range users {
		u := &users[i]
		if u.Email == email && u.Password == password && u.Role == role {
			if !u.IsActive {
				return nil, models.NewInvalidCredentialsError()
			}
			if err := store.SaveSession(ctx, s.d.Store, u); err != nil {
				return nil, err
			}
			out := *u
			return &out, nil
		}
	}
	return nil, models.NewInvalidCredentialsError()
}

// Register creates a new account, persists it, and sets it as the session.
// Email collision detection is case-sensitive exact match.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.RequireFields(map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	}); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !in.Role.Valid() {
		return nil, models.NewValidationError("role must be student, company, or admin")
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		Phone:    in.Phone,
		IsActive: true,
	}
	switch in.Role {
	case models.RoleStudent:
		profile := in.Student
		if profile == nil {
			profile = &models.StudentProfile{}
		}
		if profile.Skills == nil {
			profile.Skills = []string{}
		}
		user.Student = profile
	case models.RoleCompany:
		profile := in.Company
		if profile == nil {
			profile = &models.CompanyProfile{}
		}
		user.Company = profile
	}

	s.d.lock()
	defer s.d.unlock()

	users, err := store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == in.Email {
			return nil, models.NewDuplicateEmailError(in.Email)
		}
	}

	user.ID = s.d.IDs.NewID()
	user.CreatedAt = s.d.Clock.Now()

	users = append(users, user)
	if err := store.SaveAll(ctx, s.d.Store, store.KeyUsers, users); err != nil {
		return nil, err
	}
	if err := store.SaveSession(ctx, s.d.Store, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session. Logging out while logged out is a no-op.
func (s *AuthService) Logout(ctx context.Context) error {
	return store.ClearSession(ctx, s.d.Store)
}

// CurrentUser returns the session user, or nil when logged out.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	return store.LoadSession(ctx, s.d.Store)
}

// IsAuthenticated reports whether a session is present.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	user, err := store.LoadSession(ctx, s.d.Store)
	return err == nil && user != nil
}
