package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "jobmatch-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"users", "jobs", "applications"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query tables: %v", err)
		}
		if count != 1 {
			t.Errorf("expected %s table to exist", table)
		}
	}
}

func TestUserCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	years := 4
	user := &User{
		FullName:          "Jane Doe",
		Username:          "jane",
		Email:             "jane@example.com",
		Skills:            "java, react",
		PreferredLocation: "Remote",
		YearsExperience:   &years,
	}

	if err := db.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected ID to be set after create")
	}

	fetched, err := db.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected user to be found")
	}
	if fetched.Skills != "java, react" {
		t.Errorf("expected Skills='java, react', got %q", fetched.Skills)
	}
	if fetched.Bio != "" {
		t.Errorf("expected empty Bio, got %q", fetched.Bio)
	}
	if fetched.YearsExperience == nil || *fetched.YearsExperience != 4 {
		t.Errorf("expected YearsExperience=4, got %v", fetched.YearsExperience)
	}

	// Lookup by username is case-insensitive
	byName, _ := db.GetUser(ctx, "JANE")
	if byName == nil || byName.ID != user.ID {
		t.Error("expected to find user by username")
	}

	fetched.Bio = "Backend engineer"
	if err := db.UpdateUser(ctx, fetched); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	updated, _ := db.GetUser(ctx, user.ID)
	if updated.Bio != "Backend engineer" {
		t.Errorf("expected Bio to be updated, got %q", updated.Bio)
	}

	missing, err := db.GetUser(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for non-existent user")
	}

	if err := db.UpdateUser(ctx, &User{ID: "nope"}); err == nil {
		t.Error("expected error updating non-existent user")
	}
}

func TestJobCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	jobs := []Job{
		{Title: "Java Developer", Company: "Acme", Location: "Remote", Skills: "java,spring", PostedBy: "poster-1"},
		{Title: "Sales Associate", Company: "Shop", Location: "Onsite", PostedBy: "poster-2"},
		{Title: "Data Analyst", Company: "Acme", PostedBy: "poster-1"},
	}
	for i := range jobs {
		if err := db.CreateJob(ctx, &jobs[i]); err != nil {
			t.Fatalf("CreateJob failed: %v", err)
		}
	}
	if jobs[0].ID == 0 || jobs[1].ID <= jobs[0].ID {
		t.Errorf("expected increasing IDs, got %d, %d", jobs[0].ID, jobs[1].ID)
	}

	fetched, err := db.GetJob(ctx, jobs[0].ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if fetched == nil || fetched.Skills != "java,spring" {
		t.Fatalf("expected job with skills, got %+v", fetched)
	}

	all, err := db.ListJobs(ctx)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(all))
	}
	if all[0].ID != jobs[2].ID {
		t.Errorf("expected newest job first, got %d", all[0].ID)
	}

	posted, _ := db.ListJobsByPoster(ctx, "poster-1")
	if len(posted) != 2 {
		t.Errorf("expected 2 jobs for poster-1, got %d", len(posted))
	}

	limited, _ := db.ListJobsWithOptions(ctx, JobListOptions{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected 1 job with limit, got %d", len(limited))
	}

	notFound, _ := db.GetJob(ctx, 9999)
	if notFound != nil {
		t.Error("expected nil for non-existent job")
	}
}

func TestApplicationLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	job := &Job{Title: "Engineer", Company: "Acme", PostedBy: "poster"}
	db.CreateJob(ctx, job)

	app := &Application{UserID: "user-1", JobID: job.ID, JobTitle: job.Title, Company: job.Company}
	if err := db.CreateApplication(ctx, app); err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}
	if app.Status != StatusPending {
		t.Errorf("expected default status Pending, got %s", app.Status)
	}

	if err := db.CreateApplication(ctx, &Application{UserID: "user-1", JobID: job.ID}); err == nil {
		t.Error("expected duplicate application to fail")
	}

	if err := db.UpdateApplicationStatus(ctx, app.ID, StatusAccepted); err != nil {
		t.Fatalf("UpdateApplicationStatus failed: %v", err)
	}
	fetched, _ := db.GetApplication(ctx, app.ID)
	if fetched == nil || !fetched.IsAccepted() {
		t.Errorf("expected accepted application, got %+v", fetched)
	}
	if fetched.JobID != job.ID || fetched.UserID != "user-1" {
		t.Error("expected user and job links to be unchanged")
	}

	if err := db.UpdateApplicationStatus(ctx, "missing", StatusRejected); err == nil {
		t.Error("expected error for missing application")
	}

	byUser, _ := db.ListApplicationsByUser(ctx, "user-1")
	if len(byUser) != 1 {
		t.Errorf("expected 1 application for user, got %d", len(byUser))
	}
	byJob, _ := db.ListApplicationsByJob(ctx, job.ID)
	if len(byJob) != 1 {
		t.Errorf("expected 1 application for job, got %d", len(byJob))
	}
	none, _ := db.ListApplicationsByUser(ctx, "user-2")
	if len(none) != 0 {
		t.Errorf("expected no applications, got %d", len(none))
	}
}

func TestParseApplicationStatus(t *testing.T) {
	tests := []struct {
		input string
		want  ApplicationStatus
		ok    bool
	}{
		{"accepted", StatusAccepted, true},
		{" Rejected ", StatusRejected, true},
		{"PENDING", StatusPending, true},
		{"hired", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseApplicationStatus(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseApplicationStatus(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
