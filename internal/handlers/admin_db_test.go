// admin_db_test.go exercises admin handlers against a real database.
// Tests are skipped if PostgreSQL is not available.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"nexusapi/internal/database"
	"nexusapi/internal/models"
	"nexusapi/internal/response"
	"nexusapi/internal/secureid"
	"nexusapi/internal/store"
)

func handlersTestDSN() string {
	envOr := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "nexus")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "nexus")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

// handlersTestDB opens the test database and runs migrations, skipping
// the test when no database is reachable.
func handlersTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", handlersTestDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// newTestAdmin wires an Admin handler over the test database with no
// object storage and no mailer.
func newTestAdmin(db *sql.DB) *Admin {
	return NewAdmin(
		secureid.New("handlers-db-test-secret"),
		store.NewUserStore(db),
		store.NewBlogStore(db),
		store.NewServiceStore(db),
		store.NewProjectStore(db),
		store.NewDisciplineStore(db),
		store.NewJobStore(db),
		store.NewApplicationStore(db),
		store.NewFeedbackStore(db),
		store.NewSettingStore(db),
		nil,
		nil,
	)
}

func seedHandlersUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("handlers-%d@test.dev", time.Now().UnixNano())
	u, err := store.NewUserStore(db).Create("Handlers Test User", email, "secret-password", nil, nil)
	if err != nil {
		t.Fatalf("seed test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE email = $1", email) })
	return u
}

// idRequest attaches an encoded {id} route parameter to a request.
func idRequest(req *http.Request, token string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", token)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return env
}

// An update that sends only scalar fields must leave the stored sections
// and discipline links exactly as they were.
func TestServiceUpdate_KeepsSectionsAndDisciplinesWhenAbsent(t *testing.T) {
	db := handlersTestDB(t)
	h := newTestAdmin(db)
	user := seedHandlersUser(t, db)

	dslug := fmt.Sprintf("hd-disc-%d", time.Now().UnixNano())
	disc, err := store.NewDisciplineStore(db).Create(&models.Discipline{
		Title: "Structural Analysis", Slug: dslug, IsActive: true, CreatedBy: user.ID,
	})
	if err != nil {
		t.Fatalf("seed discipline: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM disciplines WHERE slug = $1", dslug) })

	sslug := fmt.Sprintf("hd-svc-%d", time.Now().UnixNano())
	content1, content2 := "<p>scope</p>", "<p>deliverables</p>"
	svc, err := store.NewServiceStore(db).Create(&models.Service{
		Title: "Seismic Retrofit", Slug: sslug, IsActive: true, CreatedBy: user.ID,
		Sections: []models.Section{{Content: &content1}, {Content: &content2}},
	}, []int64{disc.ID})
	if err != nil {
		t.Fatalf("seed service: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM services WHERE slug = $1", sslug) })

	form := url.Values{}
	form.Set("title", "Seismic Retrofit v2")
	form.Set("is_active", "1")
	req := httptest.NewRequest("PUT", "/admin/services/x", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = idRequest(req, h.ids.Encode(svc.ID))

	rec := httptest.NewRecorder()
	h.ServiceUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	after, err := store.NewServiceStore(db).FindByID(svc.ID)
	if err != nil || after == nil {
		t.Fatalf("reload service: %v", err)
	}
	if after.Title != "Seismic Retrofit v2" {
		t.Errorf("title = %q, want the updated one", after.Title)
	}
	if len(after.Sections) != 2 {
		t.Errorf("sections = %d, want 2 kept", len(after.Sections))
	}
	if len(after.Disciplines) != 1 || after.Disciplines[0].ID != disc.ID {
		t.Errorf("disciplines = %v, want the seeded link kept", after.Disciplines)
	}
}

// An update that names the section and discipline fields still replaces.
func TestServiceUpdate_ReplacesSectionsWhenSent(t *testing.T) {
	db := handlersTestDB(t)
	h := newTestAdmin(db)
	user := seedHandlersUser(t, db)

	sslug := fmt.Sprintf("hd-svc-repl-%d", time.Now().UnixNano())
	content := "<p>old</p>"
	svc, err := store.NewServiceStore(db).Create(&models.Service{
		Title: "Facade Engineering", Slug: sslug, IsActive: true, CreatedBy: user.ID,
		Sections: []models.Section{{Content: &content}},
	}, nil)
	if err != nil {
		t.Fatalf("seed service: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM services WHERE slug = $1", sslug) })

	form := url.Values{}
	form.Set("title", "Facade Engineering")
	form.Set("sections", `[{"content":"<p>new one</p>"},{"content":"<p>new two</p>"}]`)
	form.Set("discipline_ids", "")
	req := httptest.NewRequest("PUT", "/admin/services/x", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = idRequest(req, h.ids.Encode(svc.ID))

	rec := httptest.NewRecorder()
	h.ServiceUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	after, err := store.NewServiceStore(db).FindByID(svc.ID)
	if err != nil || after == nil {
		t.Fatalf("reload service: %v", err)
	}
	if len(after.Sections) != 2 {
		t.Fatalf("sections = %d, want the sent pair", len(after.Sections))
	}
	if after.Sections[0].Content == nil || *after.Sections[0].Content != "<p>new one</p>" {
		t.Errorf("section 0 content = %v", after.Sections[0].Content)
	}
}

// Deleting a job that has applications is a business conflict and must
// come back as a 422, not a 409.
func TestJobDelete_WithApplicationsRejected(t *testing.T) {
	db := handlersTestDB(t)
	h := newTestAdmin(db)
	user := seedHandlersUser(t, db)

	jslug := fmt.Sprintf("hd-job-%d", time.Now().UnixNano())
	job, err := store.NewJobStore(db).Create(&models.Job{
		Title: "Site Engineer", Slug: jslug, Location: "Bucharest", Type: "full-time",
		IsActive: true, CreatedBy: user.ID,
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM job_applications WHERE job_id IN (SELECT id FROM jobs WHERE slug = $1)", jslug)
		db.Exec("DELETE FROM jobs WHERE slug = $1", jslug)
	})

	if _, err := store.NewApplicationStore(db).Create(&models.JobApplication{
		JobID: job.ID, FirstName: "Ana", LastName: "Pop",
		Email: fmt.Sprintf("ana-%d@test.dev", time.Now().UnixNano()), Phone: "+40711111111",
		CoverLetter: "I would like to apply.", ResumePath: "resumes/test-resume.pdf",
		YearsOfExperience: 3, Availability: "immediate",
	}); err != nil {
		t.Fatalf("seed application: %v", err)
	}

	req := idRequest(httptest.NewRequest("DELETE", "/admin/jobs/x", nil), h.ids.Encode(job.ID))
	rec := httptest.NewRecorder()
	h.JobDelete(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("envelope reports success for a rejected delete")
	}
	if job2, err := store.NewJobStore(db).FindByID(job.ID); err != nil || job2 == nil {
		t.Error("job removed despite its applications")
	}
}

// Bulk delete responses name how many rows were removed.
func TestServicesBulkDelete_MessageCarriesCount(t *testing.T) {
	db := handlersTestDB(t)
	h := newTestAdmin(db)
	user := seedHandlersUser(t, db)

	services := store.NewServiceStore(db)
	var tokens []string
	for i := 0; i < 2; i++ {
		slug := fmt.Sprintf("hd-bulk-%d-%d", i, time.Now().UnixNano())
		svc, err := services.Create(&models.Service{
			Title: "Bulk Target", Slug: slug, IsActive: true, CreatedBy: user.ID,
		}, nil)
		if err != nil {
			t.Fatalf("seed service: %v", err)
		}
		t.Cleanup(func() { db.Exec("DELETE FROM services WHERE slug = $1", slug) })
		tokens = append(tokens, h.ids.Encode(svc.ID))
	}

	body, _ := json.Marshal(map[string][]string{"ids": tokens})
	req := httptest.NewRequest("POST", "/admin/services/bulk-delete", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServicesBulkDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Bulk delete completed: 2 deleted" {
		t.Errorf("message = %q, want the deleted count in it", env.Message)
	}
}
