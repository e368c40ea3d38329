package models

import "time"

// JobType is the employment type of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"
)

// Valid reports whether t is one of the known job types.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract:
		return true
	}
	return false
}

// Job is a posting created by a company user. CompanyName is a snapshot of
// the posting company's name taken at creation time; renaming the company
// later does not rewrite it.
type Job struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"companyId"`
	CompanyName  string    `json:"companyName"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Location     string    `json:"location"`
	Salary       string    `json:"salary"`
	Type         JobType   `json:"type"`
	Deadline     string    `json:"deadline"`
	CreatedAt    time.Time `json:"createdAt"`
}
