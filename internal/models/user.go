// Package models contains data structures for the application's domain models.
package models

import "time"

// Role identifies which dashboard a user belongs to.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// ResumeRef points at an uploaded resume file.
type ResumeRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// StudentProfile carries the student-only fields of a User.
type StudentProfile struct {
	Enrollment string     `json:"enrollment"`
	Course     string     `json:"course"`
	Year       string     `json:"year"`
	CGPA       string     `json:"cgpa"`
	Skills     []string   `json:"skills"`
	Resume     *ResumeRef `json:"resume"`
}

// CompanyProfile carries the company-only fields of a User.
type CompanyProfile struct {
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

// User represents a portal account. Exactly one of Student or Company is
// non-nil depending on Role; admins carry neither. The Password field holds
// the stored credential verbatim and must never reach an API response;
// handlers serve the Sanitized copy instead.
type User struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Password  string          `json:"password,omitempty"`
	Role      Role            `json:"role"`
	Phone     string          `json:"phone"`
	IsActive  bool            `json:"isActive"`
	Student   *StudentProfile `json:"student,omitempty"`
	Company   *CompanyProfile `json:"company,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Sanitized returns a copy safe to serialize to clients.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// HasResume reports whether a student user has a resume on file.
func (u *User) HasResume() bool {
	return u.Student != nil && u.Student.Resume != nil
}
