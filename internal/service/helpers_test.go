package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"placement/internal/models"
	"placement/internal/store"

	"github.com/stretchr/testify/require"
)

// seqIDs issues "id-1", "id-2", ... so tests are deterministic.
type seqIDs struct {
	n int
}

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

// stubClock starts at a fixed instant and advances one second per reading,
// so "later" timestamps are strictly later.
type stubClock struct {
	now time.Time
}

func newStubClock() *stubClock {
	return &stubClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stubClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestDeps() *Deps {
	d := NewDeps(store.NewMemoryStore())
	d.IDs = &seqIDs{}
	d.Clock = newStubClock()
	return d
}

func registerCompany(t *testing.T, d *Deps, email string) *models.User {
	t.Helper()
	company, err := NewAuthService(d).Register(context.Background(), RegisterInput{
		Name:     "Tech Solutions Inc.",
		Email:    email,
		Password: "company123",
		Role:     models.RoleCompany,
		Phone:    "222-222-2222",
		Company:  &models.CompanyProfile{Industry: "Technology"},
	})
	require.NoError(t, err)
	return company
}

func registerStudent(t *testing.T, d *Deps, email string) *models.User {
	t.Helper()
	student, err := NewAuthService(d).Register(context.Background(), RegisterInput{
		Name:     "John Student",
		Email:    email,
		Password: "student123",
		Role:     models.RoleStudent,
		Phone:    "333-333-3333",
		Student: &models.StudentProfile{
			Enrollment: "2024CS001",
			Course:     "Computer Science",
			Skills:     []string{"Go"},
		},
	})
	require.NoError(t, err)
	return student
}

func registerStudentWithResume(t *testing.T, d *Deps, email string) *models.User {
	t.Helper()
	student := registerStudent(t, d, email)
	updated, err := NewUserService(d).SetResume(context.Background(), student.ID, &models.ResumeRef{
		URL:  "/uploads/resumes/abc.pdf",
		Name: "resume.pdf",
		Size: 1024,
	})
	require.NoError(t, err)
	return updated
}

func createJob(t *testing.T, d *Deps, companyID string) *models.Job {
	t.Helper()
	job, err := NewJobService(d).Create(context.Background(), CreateJobInput{
		CompanyID:    companyID,
		Title:        "Frontend Developer",
		Description:  "We are looking for a skilled Frontend Developer.",
		Requirements: []string{"React", "JavaScript"},
		Location:     "Bangalore",
		Salary:       "8-12 LPA",
		Type:         models.JobTypeFullTime,
		Deadline:     "2026-12-31",
	})
	require.NoError(t, err)
	return job
}
