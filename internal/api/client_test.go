package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whotakesshowers/wts/internal/api"
)

func writeJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"http://localhost:8080", "http://localhost:8080/api"},
		{"http://localhost:8080/", "http://localhost:8080/api"},
		{"http://localhost:8080/api", "http://localhost:8080/api"},
		{"http://localhost:8080/api/", "http://localhost:8080/api"},
		{" https://picker.example/api ", "https://picker.example/api"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, api.NormalizeBaseURL(tt.in), tt.in)
	}
}

func TestClient_Randomize(t *testing.T) {
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/randomize", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		writeJSON(t, w, http.StatusOK, map[string]string{"candidate_id": "b", "candidate_name": "Bob"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, api.WithToken("tok"))
	resp, err := c.Randomize(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", gotBody["project_id"])
	assert.Equal(t, "b", resp.CandidateID)
	assert.Equal(t, "Bob", resp.CandidateName)
}

func TestClient_RandomizeEmptyWinner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL).Randomize(context.Background(), "p1")
	require.Error(t, err)
}

func TestClient_ErrorBody(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		body   any
		target error
		msg    string
		temp   bool
	}{
		{"unauthorized", http.StatusUnauthorized, map[string]string{"error": "未认证"}, api.ErrUnauthorized, "未认证", false},
		{"not found", http.StatusNotFound, map[string]string{"error": "project not found"}, api.ErrNotFound, "project not found", false},
		{"no candidates", http.StatusBadRequest, map[string]string{"error": "no candidates available"}, nil, "no candidates available", false},
		{"server", http.StatusInternalServerError, "boom", nil, `"boom"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.code, tt.body)
			}))
			defer srv.Close()

			_, err := api.NewClient(srv.URL).Randomize(context.Background(), "p1")
			require.Error(t, err)

			var se *api.StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.msg, se.Message)
			assert.Equal(t, tt.temp, se.Temporary())
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestClient_ListHistoryQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/history", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("project_id"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": "h1", "project_id": "p1", "project_name": "Showers", "candidate_id": "a", "candidate_name": "Alice", "selected_at": "2026-10-01T20:00:00Z"},
		})
	}))
	defer srv.Close()

	hs, err := api.NewClient(srv.URL).ListHistory(context.Background(), api.HistoryQuery{ProjectID: "p1", Limit: 5})
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "Alice", hs[0].CandidateName)
	assert.Equal(t, 2026, hs[0].SelectedAt.Year())
}

func TestClient_ProjectRoster(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"id": "p1", "name": "Showers", "candidate_ids": `["c","a"]`})
	})
	mux.HandleFunc("GET /api/candidates", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": "a", "name": "Alice"},
			{"id": "b", "name": "Bob"},
			{"id": "c", "name": "Carol", "photo_url": "/uploads/c.png"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p, snap, err := api.NewClient(srv.URL + "/api").ProjectRoster(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Showers", p.Name)
	assert.Equal(t, []string{"c", "a"}, p.CandidateIDs)
	assert.Equal(t, []string{"Alice", "Carol"}, snap.Names())
	assert.True(t, snap.At(1).HasPhoto())
}

func TestProjectRosterBadCandidateIDs(t *testing.T) {
	_, err := api.Project{ID: "p1", CandidateIDs: "not json"}.Roster()
	require.Error(t, err)

	p, err := api.Project{ID: "p1"}.Roster()
	require.NoError(t, err)
	assert.Empty(t, p.CandidateIDs)
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.NewClient(srv.URL).ListProjects(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
