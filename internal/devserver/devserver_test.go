package devserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testHandler() http.Handler {
	return cors(New(0, "").routes())
}

func getJSON(t *testing.T, h http.Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec.Code, body
}

func TestRootEndpoint(t *testing.T) {
	code, body := getJSON(t, testHandler(), "/")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["message"] != "Welcome to Claude Code Dev Starter" {
		t.Errorf("message = %v", body["message"])
	}
	if body["docs_url"] != "/docs" {
		t.Errorf("docs_url = %v", body["docs_url"])
	}
}

func TestUnknownPathIs404(t *testing.T) {
	code, _ := getJSON(t, testHandler(), "/nope")
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	code, body := getJSON(t, testHandler(), "/health")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestUserEndpoint(t *testing.T) {
	code, body := getJSON(t, testHandler(), "/users/7")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["user_id"] != float64(7) {
		t.Errorf("user_id = %v", body["user_id"])
	}
	if body["name"] != "John Doe" {
		t.Errorf("name = %v", body["name"])
	}
}

func TestUserEndpoint_BadID(t *testing.T) {
	code, body := getJSON(t, testHandler(), "/users/abc")
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if body["error"] == nil {
		t.Error("expected error field")
	}
}

func TestUserEndpoint_MissingID(t *testing.T) {
	code, _ := getJSON(t, testHandler(), "/users/")
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestDocsEndpoint(t *testing.T) {
	code, body := getJSON(t, testHandler(), "/docs")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["endpoints"] == nil {
		t.Error("expected endpoints listing")
	}
}

func TestCORSHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/users/1", nil)
	rec := httptest.NewRecorder()
	testHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("missing Allow-Methods on preflight")
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), PIDFileName)

	if err := WritePID(path, 12345); err != nil {
		t.Fatalf("WritePID: %v", err)
	}
	pid, ok := ReadPID(path)
	if !ok || pid != 12345 {
		t.Errorf("ReadPID = (%d, %v), want (12345, true)", pid, ok)
	}

	if err := RemovePID(path); err != nil {
		t.Fatalf("RemovePID: %v", err)
	}
	if _, ok := ReadPID(path); ok {
		t.Error("ReadPID should fail after removal")
	}

	// Removing again is not an error
	if err := RemovePID(path); err != nil {
		t.Errorf("RemovePID on missing file: %v", err)
	}
}

func TestReadPID_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), PIDFileName)
	os.WriteFile(path, []byte("not a pid\n"), 0o644)

	if _, ok := ReadPID(path); ok {
		t.Error("ReadPID should reject non-numeric content")
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	path := PIDPath(dir)

	if state, _ := Probe(path); state != StateStopped {
		t.Errorf("state = %q, want stopped", state)
	}

	// Our own process is definitely alive
	WritePID(path, os.Getpid())
	state, pid := Probe(path)
	if state != StateRunning {
		t.Errorf("state = %q, want running", state)
	}
	if pid != os.Getpid() {
		t.Errorf("pid = %d, want %d", pid, os.Getpid())
	}

	// A pid beyond the kernel's pid space is definitely dead
	WritePID(path, 1<<30)
	if state, _ := Probe(path); state != StateStale {
		t.Errorf("state = %q, want stale", state)
	}
}
