package service

import (
	"context"
	"testing"

	"placement/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobService_Create(t *testing.T) {
	t.Parallel()
	d := newTestDeps()
	svc := NewJobService(d)
	ctx := context.Background()

	company := registerCompany(t, d, "company@placement.com")

	t.Run("snapshots the company name", func(t *testing.T) {
		job := createJob(t, d, company.ID)
		assert.Equal(t, company.ID, job.CompanyID)
		assert.Equal(t, "Tech Solutions Inc.", job.CompanyName)
		assert.False(t, job.CreatedAt.IsZero())
	})

	t.Run("missing required fields", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateJobInput{CompanyID: company.ID, Title: "X"})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateJobInput{
			CompanyID:   company.ID,
			Title:       "X",
			Description: "Y",
			Location:    "Remote",
			Deadline:    "2026-12-31",
			Type:        models.JobType("Freelance"),
		})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("unknown company", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateJobInput{
			CompanyID:   "missing",
			Title:       "X",
			Description: "Y",
			Location:    "Remote",
			Deadline:    "2026-12-31",
			Type:        models.JobTypeFullTime,
		})
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})

	t.Run("students cannot post jobs", func(t *testing.T) {
		student := registerStudent(t, d, "student@placement.com")
		_, err := svc.Create(ctx, CreateJobInput{
			CompanyID:   student.ID,
			Title:       "X",
			Description: "Y",
			Location:    "Remote",
			Deadline:    "2026-12-31",
			Type:        models.JobTypeFullTime,
		})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})
}

func TestJobService_ListByCompany(t *testing.T) {
	t.Parallel()
	d := newTestDeps()
	svc := NewJobService(d)
	ctx := context.Background()

	c1 := registerCompany(t, d, "c1@placement.com")
	c2 := registerCompany(t, d, "c2@placement.com")
	createJob(t, d, c1.ID)
	createJob(t, d, c1.ID)
	createJob(t, d, c2.ID)

	mine, err := svc.ListByCompany(ctx, c1.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJobService_Update(t *testing.T) {
	t.Parallel()
	d := newTestDeps()
	svc := NewJobService(d)
	ctx := context.Background()

	company := registerCompany(t, d, "company@placement.com")
	job := createJob(t, d, company.ID)

	t.Run("merges only provided fields", func(t *testing.T) {
		salary := "10-15 LPA"
		updated, err := svc.Update(ctx, job.ID, UpdateJobInput{Salary: &salary})
		require.NoError(t, err)
		assert.Equal(t, "10-15 LPA", updated.Salary)
		assert.Equal(t, job.Title, updated.Title)
		assert.Equal(t, job.Requirements, updated.Requirements)
	})

	t.Run("non-nil requirements replace the list", func(t *testing.T) {
		updated, err := svc.Update(ctx, job.ID, UpdateJobInput{Requirements: []string{"Go"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, updated.Requirements)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		bad := models.JobType("Gig")
		_, err := svc.Update(ctx, job.ID, UpdateJobInput{Type: &bad})
		assert.True(t, models.HasCode(err, models.CodeValidation))
	})

	t.Run("unknown id", func(t *testing.T) {
		title := "X"
		_, err := svc.Update(ctx, "missing", UpdateJobInput{Title: &title})
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestJobService_DeleteCascades(t *testing.T) {
	t.Parallel()
	d := newTestDeps()
	svc := NewJobService(d)
	appSvc := NewApplicationService(d)
	ctx := context.Background()

	company := registerCompany(t, d, "company@placement.com")
	doomed := createJob(t, d, company.ID)
	kept := createJob(t, d, company.ID)
	student := registerStudentWithResume(t, d, "student@placement.com")

	_, err := appSvc.Create(ctx, CreateApplicationInput{JobID: doomed.ID, StudentID: student.ID})
	require.NoError(t, err)
	surviving, err := appSvc.Create(ctx, CreateApplicationInput{JobID: kept.ID, StudentID: student.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, doomed.ID))

	_, err = svc.Get(ctx, doomed.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	apps, err := appSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1, "only the deleted job's applications are purged")
	assert.Equal(t, surviving.ID, apps[0].ID)

	assert.True(t, models.HasCode(svc.Delete(ctx, "missing"), models.CodeNotFound))
}
