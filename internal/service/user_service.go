package service

import (
	"context"

	"placement/internal/models"
	"placement/internal/store"
)

// UserService exposes reads and updates over the users collection.
type UserService struct {
	d *Deps
}

// NewUserService returns a new UserService.
func NewUserService(d *Deps) *UserService {
	return &UserService{d: d}
}

// UpdateUserInput holds the fields Update may merge. Nil fields are left
// untouched. Role and email are absent on purpose: both are immutable after
// registration. A non-nil Student or Company replaces that payload wholesale
// and is ignored when it does not match the user's role.
type UpdateUserInput struct {
	Name     *string
	Phone    *string
	Password *string
	Student  *models.StudentProfile
	Company  *models.CompanyProfile
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
}

// Students returns users with the student role.
func (s *UserService) Students(ctx context.Context) ([]models.User, error) {
	return s.listByRole(ctx, models.RoleStudent)
}

// Companies returns users with the company role.
func (s *UserService) Companies(ctx context.Context) ([]models.User, error) {
	return s.listByRole(ctx, models.RoleCompany)
}

func (s *UserService) listByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	users, err := store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	users, err := store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			out := users[i]
			return &out, nil
		}
	}
	return nil, models.NewNotFoundError("User", id)
}

// Update merges in into the matching user and persists the collection. When
// the updated user is the session user, the session copy is refreshed too so
// it cannot diverge from persisted state.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	s.d.lock()
	defer s.d.unlock()

	return s.mutateUser(ctx, id, func(u *models.User) {
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Phone != nil {
			u.Phone = *in.Phone
		}
		if in.Password != nil {
			u.Password = *in.Password
		}
		if in.Student != nil && u.Role == models.RoleStudent {
			if in.Student.Skills == nil {
				in.Student.Skills = []string{}
			}
			u.Student = in.Student
		}
		if in.Company != nil && u.Role == models.RoleCompany {
			u.Company = in.Company
		}
	})
}

// SetResume attaches an uploaded resume to a student user.
func (s *UserService) SetResume(ctx context.Context, id string, ref *models.ResumeRef) (*models.User, error) {
	s.d.lock()
	defer s.d.unlock()

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, models.NewValidationError("only students can have a resume")
	}

	return s.mutateUser(ctx, id, func(u *models.User) {
		if u.Student == nil {
			u.Student = &models.StudentProfile{Skills: []string{}}
		}
		u.Student.Resume = ref
	})
}

// SetActive toggles an account's active flag. Deactivated users cannot log
// in; an existing session for them is cleared.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) (*models.User, error) {
	s.d.lock()
	defer s.d.unlock()

	user, err := s.mutateUser(ctx, id, func(u *models.User) {
		u.IsActive = active
	})
	if err != nil {
		return nil, err
	}

	if !active {
		session, err := store.LoadSession(ctx, s.d.Store)
		if err == nil && session != nil && session.ID == id {
			if err := store.ClearSession(ctx, s.d.Store); err != nil {
				return nil, err
			}
		}
	}
	return user, nil
}

// Delete removes a user and everything that hangs off them: a company's jobs
// and the applications to those jobs, or a student's applications. The
// session is cleared if it belonged to the removed user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	s.d.lock()
	defer s.d.unlock()

	users, err := store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
	if err != nil {
		return err
	}

	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.NewNotFoundError("User", id)
	}
	removed := users[idx]
	users = append(users[:idx], users[idx+1:]...)
	if err := store.SaveAll(ctx, s.d.Store, store.KeyUsers, users); err != nil {
		return err
	}

	switch removed.Role {
	case models.RoleCompany:
		jobs, err := store.LoadAll[models.Job](ctx, s.d.Store, store.KeyJobs)
		if err != nil {
			return err
		}
		kept := make([]models.Job, 0, len(jobs))
		for _, j := range jobs {
			if j.CompanyID != id {
				kept = append(kept, j)
			}
		}
		if err := store.SaveAll(ctx, s.d.Store, store.KeyJobs, kept); err != nil {
			return err
		}
		if err := s.purgeApplications(ctx, func(a models.Application) bool {
			return a.CompanyID == id
		}); err != nil {
			return err
		}
	case models.RoleStudent:
		if err := s.purgeApplications(ctx, func(a models.Application) bool {
			return a.StudentID == id
		}); err != nil {
			return err
		}
	}

	session, err := store.LoadSession(ctx, s.d.Store)
	if err == nil && session != nil && session.ID == id {
		if err := store.ClearSession(ctx, s.d.Store); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserService) purgeApplications(ctx context.Context, drop func(models.Application) bool) error {
	apps, err := store.LoadAll[models.Application](ctx, s.d.Store, store.KeyApplications)
	if err != nil {
		return err
	}
	kept := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if !drop(a) {
			kept = append(kept, a)
		}
	}
	return store.SaveAll(ctx, s.d.Store, store.KeyApplications, kept)
}

// mutateUser applies fn to the user with the given id, persists the
// collection, and refreshes the session copy when it is the same user.
// Callers hold the deps lock.
func (s *UserService) mutateUser(ctx context.Context, id string, fn func(*models.User)) (*models.User, error) {
	users, err := store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID != id {
			continue
		}
		fn(&users[i])
		if err := store.SaveAll(ctx, s.d.Store, store.KeyUsers, users); err != nil {
			return nil, err
		}

		session, err := store.LoadSession(ctx, s.d.Store)
		if err == nil && session != nil && session.ID == id {
			if err := store.SaveSession(ctx, s.d.Store, &users[i]); err != nil {
				return nil, err
			}
		}
		out := users[i]
		return &out, nil
	}
	return nil, models.NewNotFoundError("User", id)
}
