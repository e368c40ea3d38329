package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	t.Parallel()
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleCompany.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserSanitized(t *testing.T) {
	t.Parallel()
	u := User{ID: "u1", Email: "a@b.com", Password: "secret"}
	clean := u.Sanitized()
	assert.Empty(t, clean.Password)
	assert.Equal(t, "secret", u.Password, "the source value is untouched")
	assert.Equal(t, "u1", clean.ID)
}

func TestHasResume(t *testing.T) {
	t.Parallel()
	u := User{Role: RoleStudent}
	assert.False(t, u.HasResume())

	u.Student = &StudentProfile{}
	assert.False(t, u.HasResume())

	u.Student.Resume = &ResumeRef{URL: "/uploads/resumes/x.pdf"}
	assert.True(t, u.HasResume())
}

func TestJobTypeValid(t *testing.T) {
	t.Parallel()
	for _, jt := range []JobType{JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract} {
		assert.True(t, jt.Valid(), string(jt))
	}
	assert.False(t, JobType("Freelance").Valid())
}

func TestApplicationStatusValid(t *testing.T) {
	t.Parallel()
	for _, st := range []ApplicationStatus{StatusPending, StatusApproved, StatusRejected} {
		assert.True(t, st.Valid(), string(st))
	}
	assert.False(t, ApplicationStatus("shortlisted").Valid())
}
