package store

import (
	"database/sql"
	"errors"
	"testing"

	"nexusapi/internal/models"
)

func seedTestJob(t *testing.T, db *sql.DB, jobs *JobStore, owner int64, slug string) *models.Job {
	t.Helper()
	j, err := jobs.Create(&models.Job{
		Title:                   "Platform Engineer",
		Slug:                    slug,
		Location:                "Berlin",
		Type:                    models.JobTypeFullTime,
		KeyResponsibilities:     []string{"Run the platform"},
		PreferredQualifications: []string{"Go", "Postgres"},
		IsActive:                true,
		CreatedBy:               owner,
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return j
}

func testApplication(jobID int64, email string) *models.JobApplication {
	return &models.JobApplication{
		JobID:             jobID,
		FirstName:         "Grace",
		LastName:          "Hopper",
		Email:             email,
		Phone:             "+100000000",
		CoverLetter:       "I build compilers.",
		ResumePath:        "resumes/test.pdf",
		YearsOfExperience: 10,
		Availability:      "immediate",
	}
}

func TestJobStore_CreateAndLists(t *testing.T) {
	db := testDB(t)
	jobs := NewJobStore(db)
	owner := seedTestUser(t, db, "job-create@store-test.local")

	slug := uniqueSlug("job")
	t.Cleanup(func() { cleanJobs(t, db, slug) })

	j := seedTestJob(t, db, jobs, owner.ID, slug)
	if j.ApplicationsCount != 0 {
		t.Errorf("new job applications_count = %d", j.ApplicationsCount)
	}

	found, err := jobs.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("active job should be visible by slug")
	}
	if len(found.PreferredQualifications) != 2 {
		t.Errorf("qualifications = %v", found.PreferredQualifications)
	}

	locations, err := jobs.Locations()
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	seen := false
	for _, loc := range locations {
		if loc == "Berlin" {
			seen = true
		}
	}
	if !seen {
		t.Errorf("Locations = %v, want Berlin included", locations)
	}

	// A closed job disappears from the public lookup but stays visible
	// through the admin one.
	if err := jobs.SetActive(j.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if hidden, _ := jobs.FindBySlug(slug); hidden != nil {
		t.Error("inactive job must not resolve publicly")
	}
	if admin, _ := jobs.FindBySlugAny(slug); admin == nil {
		t.Error("inactive job must still resolve for the admin API")
	}
}

func TestApplicationStore_CreateDuplicateAndCounter(t *testing.T) {
	db := testDB(t)
	jobs := NewJobStore(db)
	apps := NewApplicationStore(db)
	owner := seedTestUser(t, db, "app-create@store-test.local")

	slug := uniqueSlug("app-job")
	t.Cleanup(func() { cleanJobs(t, db, slug) })

	j := seedTestJob(t, db, jobs, owner.ID, slug)

	created, err := apps.Create(testApplication(j.ID, "grace@applicant.local"))
	if err != nil {
		t.Fatalf("Create application: %v", err)
	}
	if created.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", created.Status)
	}

	after, _ := jobs.FindByID(j.ID)
	if after.ApplicationsCount != 1 {
		t.Errorf("applications_count = %d, want 1", after.ApplicationsCount)
	}

	// Same email, different case, same job: duplicate.
	_, err = apps.Create(testApplication(j.ID, "GRACE@applicant.local"))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate application err = %v, want ErrDuplicate", err)
	}

	if err := apps.Delete(created.ID); err != nil {
		t.Fatalf("Delete application: %v", err)
	}
	after, _ = jobs.FindByID(j.ID)
	if after.ApplicationsCount != 0 {
		t.Errorf("applications_count after delete = %d, want 0", after.ApplicationsCount)
	}
}

func TestJobStore_DeleteBlockedByApplications(t *testing.T) {
	db := testDB(t)
	jobs := NewJobStore(db)
	apps := NewApplicationStore(db)
	owner := seedTestUser(t, db, "job-conflict@store-test.local")

	slug := uniqueSlug("conflict-job")
	t.Cleanup(func() { cleanJobs(t, db, slug) })

	j := seedTestJob(t, db, jobs, owner.ID, slug)
	if _, err := apps.Create(testApplication(j.ID, "conflict@applicant.local")); err != nil {
		t.Fatalf("Create application: %v", err)
	}

	if err := jobs.Delete(j.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("Delete err = %v, want ErrConflict", err)
	}
	if still, _ := jobs.FindByID(j.ID); still == nil {
		t.Error("job with applications must survive the delete")
	}

	res, err := jobs.BulkDelete([]int64{j.ID})
	if err != nil {
		t.Fatalf("BulkDelete: %v", err)
	}
	if res.DeletedCount != 0 || len(res.Errors) != 1 {
		t.Errorf("BulkDelete result = %+v, want recorded conflict", res)
	}
}

func TestApplicationStore_StatusReview(t *testing.T) {
	db := testDB(t)
	jobs := NewJobStore(db)
	apps := NewApplicationStore(db)
	owner := seedTestUser(t, db, "app-review@store-test.local")

	slug := uniqueSlug("review-job")
	t.Cleanup(func() { cleanJobs(t, db, slug) })

	j := seedTestJob(t, db, jobs, owner.ID, slug)
	a, err := apps.Create(testApplication(j.ID, "review@applicant.local"))
	if err != nil {
		t.Fatalf("Create application: %v", err)
	}

	notes := "solid candidate"
	if err := apps.UpdateStatus(a.ID, models.StatusShortlisted, &notes, owner.ID); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	found, err := apps.FindByID(a.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Status != models.StatusShortlisted {
		t.Errorf("status = %s", found.Status)
	}
	if found.AdminNotes == nil || *found.AdminNotes != notes {
		t.Error("admin notes not recorded")
	}
	if found.ReviewedAt == nil || found.ReviewedBy == nil || *found.ReviewedBy != owner.ID {
		t.Error("review metadata not recorded")
	}
	if found.Reviewer == nil || found.Reviewer.ID != owner.ID {
		t.Error("reviewer not loaded")
	}

	// A later status change without notes keeps the old notes.
	if err := apps.UpdateStatus(a.ID, models.StatusHired, nil, owner.ID); err != nil {
		t.Fatalf("UpdateStatus second: %v", err)
	}
	found, _ = apps.FindByID(a.ID)
	if found.AdminNotes == nil || *found.AdminNotes != notes {
		t.Error("nil notes must preserve previous notes")
	}

	// UpdateNotes rewrites notes without touching the status.
	if err := apps.UpdateNotes(a.ID, "second interview scheduled", owner.ID); err != nil {
		t.Fatalf("UpdateNotes: %v", err)
	}
	found, _ = apps.FindByID(a.ID)
	if found.AdminNotes == nil || *found.AdminNotes != "second interview scheduled" {
		t.Error("notes not replaced")
	}
	if found.Status != models.StatusHired {
		t.Errorf("status changed by UpdateNotes: %s", found.Status)
	}
}
