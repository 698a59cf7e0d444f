package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

const userColumns = `id, full_name, username, email, skills, experience, bio,
	preferred_location, preferred_job_type, salary_expectation, job_title,
	years_experience, industries, certifications, created_at, updated_at`

func scanUser(s scanner) (*User, error) {
	u := &User{}
	var fullName, username, email, skills, experience, bio sql.NullString
	var prefLocation, prefJobType, salary, jobTitle, industries, certs sql.NullString
	var years sql.NullInt64

	if err := s.Scan(
		&u.ID, &fullName, &username, &email, &skills, &experience, &bio,
		&prefLocation, &prefJobType, &salary, &jobTitle,
		&years, &industries, &certs, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.FullName = fullName.String
	u.Username = username.String
	u.Email = email.String
	u.Skills = skills.String
	u.Experience = experience.String
	u.Bio = bio.String
	u.PreferredLocation = prefLocation.String
	u.PreferredJobType = prefJobType.String
	u.SalaryExpectation = salary.String
	u.JobTitle = jobTitle.String
	u.YearsExperience = IntPtr(years)
	u.Industries = industries.String
	u.Certifications = certs.String
	return u, nil
}

// CreateUser inserts a new user
func (db *DB) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt

	_, err := db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		u.ID, NullString(u.FullName), NullString(u.Username), NullString(u.Email),
		NullString(u.Skills), NullString(u.Experience), NullString(u.Bio),
		NullString(u.PreferredLocation), NullString(u.PreferredJobType),
		NullString(u.SalaryExpectation), NullString(u.JobTitle), NullInt(u.YearsExperience),
		NullString(u.Industries), NullString(u.Certifications), u.CreatedAt, u.UpdatedAt,
	)
	return err
}

// GetUser retrieves a user by ID or username
func (db *DB) GetUser(ctx context.Context, idOrUsername string) (*User, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = ? OR LOWER(username) = LOWER(?)
		LIMIT 1
	`, idOrUsername, idOrUsername)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser updates an existing user's profile
func (db *DB) UpdateUser(ctx context.Context, u *User) error {
	u.UpdatedAt = time.Now()

	result, err := db.ExecContext(ctx, `
		UPDATE users SET
			full_name = ?, username = ?, email = ?, skills = ?, experience = ?, bio = ?,
			preferred_location = ?, preferred_job_type = ?, salary_expectation = ?,
			job_title = ?, years_experience = ?, industries = ?, certifications = ?,
			updated_at = ?
		WHERE id = ?
	`,
		NullString(u.FullName), NullString(u.Username), NullString(u.Email),
		NullString(u.Skills), NullString(u.Experience), NullString(u.Bio),
		NullString(u.PreferredLocation), NullString(u.PreferredJobType),
		NullString(u.SalaryExpectation), NullString(u.JobTitle), NullInt(u.YearsExperience),
		NullString(u.Industries), NullString(u.Certifications), u.UpdatedAt, u.ID,
	)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user not found: %s", u.ID)
	}
	return nil
}

// ListUsers retrieves all users, newest first
func (db *DB) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

const jobColumns = `id, title, description, company, location, salary, job_type,
	experience, skills, posted_by, created_at`

func scanJob(s scanner) (*Job, error) {
	j := &Job{}
	var description, location, salary, jobType, experience, skills sql.NullString

	if err := s.Scan(
		&j.ID, &j.Title, &description, &j.Company, &location, &salary, &jobType,
		&experience, &skills, &j.PostedBy, &j.CreatedAt,
	); err != nil {
		return nil, err
	}

	j.Description = description.String
	j.Location = location.String
	j.Salary = salary.String
	j.JobType = jobType.String
	j.Experience = experience.String
	j.Skills = skills.String
	return j, nil
}

// CreateJob inserts a new job posting and sets its ID
func (db *DB) CreateJob(ctx context.Context, j *Job) error {
	j.CreatedAt = time.Now()

	result, err := db.ExecContext(ctx, `
		INSERT INTO jobs (title, description, company, location, salary, job_type,
			experience, skills, posted_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		j.Title, NullString(j.Description), j.Company, NullString(j.Location),
		NullString(j.Salary), NullString(j.JobType), NullString(j.Experience),
		NullString(j.Skills), j.PostedBy, j.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	j.ID = id
	return nil
}

// GetJob retrieves a job by ID
func (db *DB) GetJob(ctx context.Context, id int64) (*Job, error) {
	row := db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)

	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

// ListJobs retrieves every job posting, newest first
func (db *DB) ListJobs(ctx context.Context) ([]Job, error) {
	return db.ListJobsWithOptions(ctx, JobListOptions{})
}

// ListJobsByPoster retrieves the jobs a user posted
func (db *DB) ListJobsByPoster(ctx context.Context, userID string) ([]Job, error) {
	return db.ListJobsWithOptions(ctx, JobListOptions{PostedBy: &userID})
}

// ListJobsWithOptions retrieves jobs with optional filters
func (db *DB) ListJobsWithOptions(ctx context.Context, opts JobListOptions) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []interface{}{}

	if opts.PostedBy != nil {
		query += " AND posted_by = ?"
		args = append(args, *opts.PostedBy)
	}

	query += " ORDER BY id DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

const applicationColumns = `id, user_id, job_id, job_title, company, status, resume_path, applied_at`

func scanApplication(s scanner) (*Application, error) {
	a := &Application{}
	var jobTitle, company, resumePath sql.NullString

	if err := s.Scan(
		&a.ID, &a.UserID, &a.JobID, &jobTitle, &company, &a.Status, &resumePath, &a.AppliedAt,
	); err != nil {
		return nil, err
	}

	a.JobTitle = jobTitle.String
	a.Company = company.String
	a.ResumePath = resumePath.String
	return a, nil
}

// CreateApplication records that a user applied to a job. Status defaults to
// Pending; a second application to the same job is rejected.
func (db *DB) CreateApplication(ctx context.Context, a *Application) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now()
	}

	var existing int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM applications WHERE user_id = ? AND job_id = ?
	`, a.UserID, a.JobID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("user %s already applied to job %d", a.UserID, a.JobID)
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.UserID, a.JobID, NullString(a.JobTitle), NullString(a.Company),
		a.Status, NullString(a.ResumePath), a.AppliedAt,
	)
	return err
}

// GetApplication retrieves an application by ID
func (db *DB) GetApplication(ctx context.Context, id string) (*Application, error) {
	row := db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)

	a, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateApplicationStatus changes the status of an application. The user and
// job it links are never modified.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id string, status ApplicationStatus) error {
	result, err := db.ExecContext(ctx, `UPDATE applications SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// ListApplicationsByUser retrieves a user's applications, oldest first
func (db *DB) ListApplicationsByUser(ctx context.Context, userID string) ([]Application, error) {
	return db.listApplications(ctx, "user_id = ?", userID)
}

// ListApplicationsByJob retrieves the applications submitted for a job
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID int64) ([]Application, error) {
	return db.listApplications(ctx, "job_id = ?", jobID)
}

func (db *DB) listApplications(ctx context.Context, where string, arg interface{}) ([]Application, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE `+where+`
		ORDER BY applied_at ASC, id ASC
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}

	return apps, rows.Err()
}
