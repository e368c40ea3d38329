package service

import (
	"context"

	"placement/internal/models"
	"placement/internal/store"
	"placement/internal/validation"
)

// JobService exposes CRUD over the jobs collection.
type JobService struct {
	d *Deps
}

// NewJobService returns a new JobService.
func NewJobService(d *Deps) *JobService {
	return &JobService{d: d}
}

// CreateJobInput holds the fields for a new posting.
type CreateJobInput struct {
	CompanyID    string
	Title        string
	Description  string
	Requirements []string
	Location     string
	Salary       string
	Type         models.JobType
	Deadline     string
}

// UpdateJobInput holds the fields Update may merge. Nil fields are left
// untouched. A non-nil Requirements replaces the list wholesale.
type UpdateJobInput struct {
	Title        *string
	Description  *string
	Requirements []string
	Location     *string
	Salary       *string
	Type         *models.JobType
	Deadline     *string
}

// List returns every job.
func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	return store.LoadAll[models.Job](ctx, s.d.Store, store.KeyJobs)
}

// Get returns the job with the given id.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	jobs, err := store.LoadAll[models.Job](ctx, s.d.Store, store.KeyJobs)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID == id {
			out := jobs[i]
			return &out, nil
		}
	}
	return nil, models.NewNotFoundError("Job", id)
}

// ListByCompany returns the jobs posted by one company.
func (s *JobService) ListByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	jobs, err := store.LoadAll[models.Job](ctx, s.d.Store, store.KeyJobs)
	if err != nil {
		return nil, err
	}
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.CompanyID == companyID {
			out = append(out, j)
		}
	}
	return out, nil
}

// Create appends a new posting. CompanyName is snapshotted from the posting
// company at this moment and is not kept in sync afterwards.
func (s *JobService) Create(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	if err := validation.RequireFields(map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"location":    in.Location,
		"deadline":    in.Deadline,
	}); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !in.Type.Valid() {
		return nil, models.NewValidationError("type must be Full-time, Part-time, Internship, or Contract")
	}

	s.d.lock()
	defer s.d.unlock()

	users, err := store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
	if err != nil {
		return nil, err
	}
	var company *models.User
	for i := range users {
		if users[i].ID == in.CompanyID {
			company = &users[i]
			break
		}
	}
	if company == nil {
		return nil, models.NewNotFoundError("Company", in.CompanyID)
	}
	if company.Role != models.RoleCompany {
		return nil, models.NewValidationError("jobs can only be posted by company accounts")
	}

	requirements := in.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	job := models.Job{
		ID:           s.d.IDs.NewID(),
		CompanyID:    company.ID,
		CompanyName:  company.Name,
		Title:        in.Title,
		Description:  in.Description,
		Requirements: requirements,
		Location:     in.Location,
		Salary:       in.Salary,
		Type:         in.Type,
		Deadline:     in.Deadline,
		CreatedAt:    s.d.Clock.Now(),
	}

	jobs, err := store.LoadAll[models.Job](ctx, s.d.Store, store.KeyJobs)
	if err != nil {
		return nil, err
	}
	jobs = append(jobs, job)
	if err := store.SaveAll(ctx, s.d.Store, store.KeyJobs, jobs); err != nil {
		return nil, err
	}
	return &job, nil
}

// Update merges in into the matching job and persists the collection.
func (s *JobService) Update(ctx context.Context, id string, in UpdateJobInput) (*models.Job, error) {
	if in.Type != nil && !in.Type.Valid() {
		return nil, models.NewValidationError("type must be Full-time, Part-time, Internship, or Contract")
	}

	s.d.lock()
	defer s.d.unlock()

	jobs, err := store.LoadAll[models.Job](ctx, s.d.Store, store.KeyJobs)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID != id {
			continue
		}
		j := &jobs[i]
		if in.Title != nil {
			j.Title = *in.Title
		}
		if in.Description != nil {
			j.Description = *in.Description
		}
		if in.Requirements != nil {
			j.Requirements = in.Requirements
		}
		if in.Location != nil {
			j.Location = *in.Location
		}
		if in.Salary != nil {
			j.Salary = *in.Salary
		}
		if in.Type != nil {
			j.Type = *in.Type
		}
		if in.Deadline != nil {
			j.Deadline = *in.Deadline
		}
		if err := store.SaveAll(ctx, s.d.Store, store.KeyJobs, jobs); err != nil {
			return nil, err
		}
		out := *j
		return &out, nil
	}
	return nil, models.NewNotFoundError("Job", id)
}

// Delete removes a job and purges its dependent applications, so no
// application is left referencing a job that no longer exists.
func (s *JobService) Delete(ctx context.Context, id string) error {
	s.d.lock()
	defer s.d.unlock()

	jobs, err := store.LoadAll[models.Job](ctx, s.d.Store, store.KeyJobs)
	if err != nil {
		return err
	}
	idx := -1
	for i := range jobs {
		if jobs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.NewNotFoundError("Job", id)
	}
	jobs = append(jobs[:idx], jobs[idx+1:]...)
	if err := store.SaveAll(ctx, s.d.Store, store.KeyJobs, jobs); err != nil {
		return err
	}

	apps, err := store.LoadAll[models.Application](ctx, s.d.Store, store.KeyApplications)
	if err != nil {
		return err
	}
	kept := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if a.JobID != id {
			kept = append(kept, a)
		}
	}
	return store.SaveAll(ctx, s.d.Store, store.KeyApplications, kept)
}
