package database

import (
	"database/sql"
	"strings"
	"time"
)

// ApplicationStatus represents the outcome of an application
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

// ParseApplicationStatus matches a status name case-insensitively
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	for _, st := range []ApplicationStatus{StatusPending, StatusAccepted, StatusRejected} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// User is a job seeker (and possibly a poster). Empty text fields are treated
// as absent everywhere.
type User struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name,omitempty"`
	Username          string    `json:"username,omitempty"`
	Email             string    `json:"email,omitempty"`
	Skills            string    `json:"skills,omitempty"`
	Experience        string    `json:"experience,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	PreferredLocation string    `json:"preferred_location,omitempty"`
	PreferredJobType  string    `json:"preferred_job_type,omitempty"`
	SalaryExpectation string    `json:"salary_expectation,omitempty"`
	JobTitle          string    `json:"job_title,omitempty"`
	YearsExperience   *int      `json:"years_experience,omitempty"`
	Industries        string    `json:"industries,omitempty"`
	Certifications    string    `json:"certifications,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Job is a job posting
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Salary      string    `json:"salary,omitempty"`
	JobType     string    `json:"job_type,omitempty"`
	Experience  string    `json:"experience,omitempty"`
	Skills      string    `json:"skills,omitempty"`
	PostedBy    string    `json:"posted_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Application links a user to a job they applied to
type Application struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	JobID      int64             `json:"job_id"`
	JobTitle   string            `json:"job_title,omitempty"`
	Company    string            `json:"company,omitempty"`
	Status     ApplicationStatus `json:"status"`
	ResumePath string            `json:"resume_path,omitempty"`
	AppliedAt  time.Time         `json:"applied_at"`
}

// IsAccepted reports whether the application was accepted (case-insensitive)
func (a *Application) IsAccepted() bool {
	return strings.EqualFold(string(a.Status), string(StatusAccepted))
}

// JobListOptions contains options for listing jobs
type JobListOptions struct {
	PostedBy *string
	Limit    int
}

// NullString stores an empty string as NULL
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullInt converts *int to sql.NullInt64
func NullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// IntPtr converts sql.NullInt64 to *int
func IntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
