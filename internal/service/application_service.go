package service

import (
	"context"

	"placement/internal/models"
	"placement/internal/observability"
	"placement/internal/store"
)

// ApplicationService exposes reads, creation, and status transitions over
// the applications collection.
type ApplicationService struct {
	d *Deps
}

// NewApplicationService returns a new ApplicationService.
func NewApplicationService(d *Deps) *ApplicationService {
	return &ApplicationService{d: d}
}

// CreateApplicationInput identifies the job and the applying student. All
// display fields are snapshotted from the live records, never supplied by
// the caller.
type CreateApplicationInput struct {
	JobID     string
	StudentID string
}

// List returns every application.
func (s *ApplicationService) List(ctx context.Context) ([]models.Application, error) {
	return store.LoadAll[models.Application](ctx, s.d.Store, store.KeyApplications)
}

// ListByStudent returns the applications submitted by one student.
func (s *ApplicationService) ListByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	return s.filter(ctx, func(a models.Application) bool { return a.StudentID == studentID })
}

// ListByCompany returns the applications against any of one company's jobs.
func (s *ApplicationService) ListByCompany(ctx context.Context, companyID string) ([]models.Application, error) {
	return s.filter(ctx, func(a models.Application) bool { return a.CompanyID == companyID })
}

// ListByJob returns the applications against one job.
func (s *ApplicationService) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	return s.filter(ctx, func(a models.Application) bool { return a.JobID == jobID })
}

func (s *ApplicationService) filter(ctx context.Context, keep func(models.Application) bool) ([]models.Application, error) {
	apps, err := store.LoadAll[models.Application](ctx, s.d.Store, store.KeyApplications)
	if err != nil {
		return nil, err
	}
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Get returns the application with the given id.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	apps, err := store.LoadAll[models.Application](ctx, s.d.Store, store.KeyApplications)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if apps[i].ID == id {
			out := apps[i]
			return &out, nil
		}
	}
	return nil, models.NewNotFoundError("Application", id)
}

// Create submits an application with status pending. A student may apply to
// a given job at most once and must have a resume on file.
func (s *ApplicationService) Create(ctx context.Context, in CreateApplicationInput) (*models.Application, error) {
	s.d.lock()
	defer s.d.unlock()

	jobs, err := store.LoadAll[models.Job](ctx, s.d.Store, store.KeyJobs)
	if err != nil {
		return nil, err
	}
	var job *models.Job
	for i := range jobs {
		if jobs[i].ID == in.JobID {
			job = &jobs[i]
			break
		}
	}
	if job == nil {
		return nil, models.NewNotFoundError("Job", in.JobID)
	}

	users, err := store.LoadAll[models.User](ctx, s.d.Store, store.KeyUsers)
	if err != nil {
		return nil, err
	}
	var student *models.User
	for i := range users {
		if users[i].ID == in.StudentID {
			student = &users[i]
			break
		}
	}
	if student == nil {
		return nil, models.NewNotFoundError("Student", in.StudentID)
	}
	if student.Role != models.RoleStudent {
		return nil, models.NewValidationError("only students can apply to jobs")
	}
	if !student.HasResume() {
		return nil, models.NewValidationError("upload a resume before applying to jobs")
	}

	apps, err := store.LoadAll[models.Application](ctx, s.d.Store, store.KeyApplications)
	if err != nil {
		return nil, err
	}
	for _, a := range apps {
		if a.JobID == in.JobID && a.StudentID == in.StudentID {
			return nil, models.NewValidationError("you have already applied to this job")
		}
	}

	app := models.Application{
		ID:           s.d.IDs.NewID(),
		JobID:        job.ID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		JobTitle:     job.Title,
		CompanyName:  job.CompanyName,
		CompanyID:    job.CompanyID,
		Status:       models.StatusPending,
		AppliedAt:    s.d.Clock.Now(),
	}

	apps = append(apps, app)
	if err := store.SaveAll(ctx, s.d.Store, store.KeyApplications, apps); err != nil {
		return nil, err
	}
	observability.ApplicationsCreated.Inc()
	return &app, nil
}

// UpdateStatus moves an application to the given status and stamps
// UpdatedAt. Approved and rejected are terminal in practice, but re-marking
// an already-decided application is allowed.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("status must be pending, approved, or rejected")
	}

	s.d.lock()
	defer s.d.unlock()

	apps, err := store.LoadAll[models.Application](ctx, s.d.Store, store.KeyApplications)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if apps[i].ID != id {
			continue
		}
		apps[i].Status = status
		apps[i].UpdatedAt = s.d.Clock.Now()
		if err := store.SaveAll(ctx, s.d.Store, store.KeyApplications, apps); err != nil {
			return nil, err
		}
		observability.ApplicationStatusChanges.WithLabelValues(string(status)).Inc()
		out := apps[i]
		return &out, nil
	}
	return nil, models.NewNotFoundError("Application", id)
}
