package models

import "time"

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Application records a student applying to a job. StudentName, StudentEmail,
// JobTitle, CompanyName and CompanyID are snapshots of the referenced records
// at apply time and are not kept in sync afterwards.
type Application struct {
	ID           string            `json:"id"`
	JobID        string            `json:"jobId"`
	StudentID    string            `json:"studentId"`
	StudentName  string            `json:"studentName"`
	StudentEmail string            `json:"studentEmail"`
	JobTitle     string            `json:"jobTitle"`
	CompanyName  string            `json:"companyName"`
	CompanyID    string            `json:"companyId"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    time.Time         `json:"appliedAt"`
	UpdatedAt    time.Time         `json:"updatedAt,omitempty"`
}
