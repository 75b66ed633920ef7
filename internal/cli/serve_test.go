package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/nugraph/nugraph/pkg/errors"
	pkgio "github.com/nugraph/nugraph/pkg/io"
	"github.com/nugraph/nugraph/pkg/pipeline"
)

// newTestAPI builds the API handler backed by a cache-less runner.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	c := newTestCLI(t)
	runner := pipeline.NewRunner(nil, c.Logger)
	t.Cleanup(func() { _ = runner.Close() })
	return c.apiHandler(runner, defaultConfig())
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestAPI(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf(`status = %q, want "ok"`, body["status"])
	}
	if body["version"] == "" {
		t.Error("health body should report the build version")
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestAPI(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	id := rec.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("X-Request-ID header not set")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-ID %q is not a uuid: %v", id, err)
	}
}

func TestResolveEndpoint(t *testing.T) {
	handler := newTestAPI(t)
	repo := writeRepoFile(t, "A: B C\nB: C\nC:\n")

	body := fmt.Sprintf(`{"package":"A","mode":"test","repo":%q}`, repo)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/resolve", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp resolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, err := uuid.Parse(resp.RequestID); err != nil {
		t.Errorf("request_id %q is not a uuid: %v", resp.RequestID, err)
	}
	if resp.DurationMS < 0 {
		t.Errorf("duration_ms = %d, want >= 0", resp.DurationMS)
	}

	result, err := pkgio.ReadJSON(bytes.NewReader(resp.Graph))
	if err != nil {
		t.Fatalf("ReadJSON(graph) error: %v", err)
	}
	if result.Root != "A" {
		t.Errorf("graph root = %q, want %q", result.Root, "A")
	}
	if result.Graph.Len() != 3 {
		t.Errorf("graph Len() = %d, want 3", result.Graph.Len())
	}
}

func TestResolveEndpointErrors(t *testing.T) {
	handler := newTestAPI(t)
	missing := filepath.Join(t.TempDir(), "absent.txt")
	malformed := writeRepoFile(t, "A B C\n")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{
			name:       "invalid json body",
			body:       "{broken",
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:       "empty package",
			body:       `{"package":"","mode":"test","repo":"repo.txt"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidPackage,
		},
		{
			name:       "unknown mode",
			body:       `{"package":"A","mode":"prod"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidMode,
		},
		{
			name:       "test mode without repo",
			body:       `{"package":"A","mode":"test"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrCodeInvalidRepo,
		},
		{
			name:       "missing repository file",
			body:       fmt.Sprintf(`{"package":"A","mode":"test","repo":%q}`, missing),
			wantStatus: http.StatusNotFound,
			wantCode:   errors.ErrCodeFileNotFound,
		},
		{
			name:       "malformed repository file",
			body:       fmt.Sprintf(`{"package":"A","mode":"test","repo":%q}`, malformed),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   errors.ErrCodeMalformedRepository,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/resolve", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error.Code != string(tt.wantCode) {
				t.Errorf("error code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
			if resp.Error.Message == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestResolveEndpointOnlineNotFound(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer registry.Close()

	handler := newTestAPI(t)
	body := fmt.Sprintf(`{"package":"Ghost.Package","version":"1.0.0","repo":%q}`, registry.URL)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/resolve", strings.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusNotFound, rec.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error.Code != string(errors.ErrCodePackageNotFound) {
		t.Errorf("error code = %q, want %q", resp.Error.Code, errors.ErrCodePackageNotFound)
	}
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidVersion, http.StatusBadRequest},
		{errors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{errors.ErrCodePackageNotFound, http.StatusNotFound},
		{errors.ErrCodeFileNotFound, http.StatusNotFound},
		{errors.ErrCodeMalformedRepository, http.StatusUnprocessableEntity},
		{errors.ErrCodeMalformedDocument, http.StatusUnprocessableEntity},
		{errors.ErrCodeNetwork, http.StatusBadGateway},
		{errors.ErrCodeCache, http.StatusInternalServerError},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusForCode(tt.code); got != tt.want {
			t.Errorf("statusForCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
