package uploader

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timetable.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestUploader(srv *httptest.Server) *Uploader {
	u := New("secret", zap.NewNop())
	u.BaseURL = srv.URL
	u.Client = srv.Client()
	return u
}

func TestUploadToGitHubReplacesExistingFile(t *testing.T) {
	var put GitHubUploadRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/someone/timetables/contents/data/timetable.json", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `{"sha": "abc123"}`)
		case http.MethodPut:
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	err := newTestUploader(srv).UploadToGitHub(context.Background(),
		"someone/timetables", "data/timetable.json", writeFile(t, `[]`), "Update timetable")
	require.NoError(t, err)

	assert.Equal(t, "Update timetable", put.Message)
	assert.Equal(t, "abc123", put.SHA)
	content, err := base64.StdEncoding.DecodeString(put.Content)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))
}

func TestUploadToGitHubCreatesNewFile(t *testing.T) {
	var put GitHubUploadRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			http.NotFound(w, r)
			return
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&put))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestUploader(srv).UploadToGitHub(context.Background(), "someone/timetables", "t.ics", writeFile(t, "BEGIN:VCALENDAR"), "Add")
	require.NoError(t, err)
	assert.Empty(t, put.SHA)
}

func TestUploadToGitHubFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newTestUploader(srv).UploadToGitHub(context.Background(), "someone/timetables", "t.json", writeFile(t, "[]"), "Add")
	assert.ErrorContains(t, err, "status code: 401")

	err = newTestUploader(srv).UploadToGitHub(context.Background(), "someone/timetables", "t.json", filepath.Join(t.TempDir(), "missing"), "Add")
	assert.ErrorContains(t, err, "error reading file")
}
