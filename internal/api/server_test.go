package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DanielTheTeacher/ActivityHub/internal/catalog"
	"github.com/DanielTheTeacher/ActivityHub/internal/ingest"
	"github.com/DanielTheTeacher/ActivityHub/internal/store"
)

const testAdminSecret = "test-secret"

func testServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("ADMIN_SECRET", testAdminSecret)

	activities := catalog.Normalize([]catalog.RawRecord{
		{Title: "Icebreaker", FullDescription: "a warm-up"},
		rawJSON(t, `{"title":"Debate Prep","full_description":"arguments","tags":{"main_category":"Oral English","cefr_level":["B1","B2"],"group_size":["Pairs"]}}`),
	})
	return NewServer(store.New(activities), nil)
}

func rawJSON(t *testing.T, s string) catalog.RawRecord {
	t.Helper()
	var rec catalog.RawRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		t.Fatal(err)
	}
	return rec
}

func doRequest(s *Server, method, target, body string, admin bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if admin {
		req.Header.Set("X-Admin-Secret", testAdminSecret)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestListActivities(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/activities?main_category=Oral+English", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Total      int                `json:"total"`
		Matched    int                `json:"matched"`
		Query      string             `json:"query"`
		Activities []catalog.Activity `json:"activities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || resp.Matched != 1 {
		t.Errorf("total/matched = %d/%d, want 2/1", resp.Total, resp.Matched)
	}
	if resp.Activities[0].ID != "debate-prep" {
		t.Errorf("matched %q, want debate-prep", resp.Activities[0].ID)
	}
	if !strings.Contains(resp.Query, "main_category=Oral+English") {
		t.Errorf("canonical query missing filter: %q", resp.Query)
	}
}

func TestGetActivityNotFound(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/activities/nope", "", false)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFilterOptions(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/filter-options", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var opts catalog.FilterOptions
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatal(err)
	}
	if len(opts.MainCategory) != 1 || opts.MainCategory[0] != "Oral English" {
		t.Errorf("main_category = %v", opts.MainCategory)
	}
}

func TestExportOmitsIDs(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/export", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, "updated_activities.json") {
		t.Errorf("content disposition = %q", got)
	}
	if strings.Contains(rec.Body.String(), `"id"`) {
		t.Error("export body must not contain ids")
	}
}

func TestAdminRoutesRequireSecret(t *testing.T) {
	s := testServer(t)

	rec := doRequest(s, http.MethodDelete, "/api/v1/activities/icebreaker", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated delete status = %d, want 401", rec.Code)
	}

	rec = doRequest(s, http.MethodDelete, "/api/v1/activities/icebreaker", "", true)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated delete status = %d, want 200", rec.Code)
	}
}

func TestReloadJob(t *testing.T) {
	t.Setenv("ADMIN_SECRET", testAdminSecret)

	dir := t.TempDir()
	reg := &ingest.Registry{}
	for _, id := range []string{"activities", "skills", "fuelbox_questions"} {
		path := filepath.Join(dir, id+".json")
		if err := os.WriteFile(path, []byte(`[{"title":"From `+id+`"}]`), 0o644); err != nil {
			t.Fatal(err)
		}
		reg.Sources = append(reg.Sources, ingest.SourceConfig{ID: id, Name: id, URL: path})
	}

	s := NewServer(store.New(nil), ingest.NewLoader(reg))

	rec := doRequest(s, http.MethodPost, "/api/v1/admin/reload", "", true)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("reload status = %d: %s", rec.Code, rec.Body.String())
	}
	var started struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &started); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		rec = doRequest(s, http.MethodGet, "/api/v1/admin/job/"+started.JobID, "", true)
		if rec.Code != http.StatusOK {
			t.Fatalf("job status = %d", rec.Code)
		}
		var job struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
			t.Fatal(err)
		}
		if job.Status == "completed" {
			break
		}
		if job.Status == "failed" || time.Now().After(deadline) {
			t.Fatalf("reload job did not complete: %s", rec.Body.String())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if s.Store.Count() != 3 {
		t.Errorf("store count after reload = %d, want 3", s.Store.Count())
	}
}

func TestUpdateActivity(t *testing.T) {
	s := testServer(t)

	body := `{"title":"Debate Prep","full_description":"rewritten","tags":{"main_category":"Oral English"}}`
	rec := doRequest(s, http.MethodPut, "/api/v1/activities/debate-prep", body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var updated catalog.Activity
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.ID != "debate-prep" || updated.FullDescription != "rewritten" {
		t.Errorf("updated = %+v", updated)
	}

	rec = doRequest(s, http.MethodPut, "/api/v1/activities/missing", body, true)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}

	rec = doRequest(s, http.MethodPut, "/api/v1/activities/debate-prep", `{"full_description":"no title"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing title status = %d, want 400", rec.Code)
	}
}
