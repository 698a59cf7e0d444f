package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vijay-prabhu/jobmatch/internal/database"
)

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func basicUser() *database.User {
	return &database.User{ID: "u1", FullName: "Ada Lovelace", Email: "ada@example.com", Username: "ada"}
}

func TestProfileScore(t *testing.T) {
	full := basicUser()
	full.Bio = "engineer"
	full.Skills = "go"
	full.Experience = "senior"
	full.PreferredJobType = "remote"
	full.PreferredLocation = "Berlin"
	full.SalaryExpectation = "100k"

	tests := []struct {
		name string
		user *database.User
		want int
	}{
		{"nil", nil, 0},
		{"empty", &database.User{ID: "u1"}, 0},
		{"basic info", basicUser(), 30},
		{"full", full, 100},
		{"whitespace ignored", &database.User{ID: "u1", Bio: "  ", Skills: "go"}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProfileScore(tt.user); got != tt.want {
				t.Errorf("ProfileScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFallbackSuggestion(t *testing.T) {
	withBio := basicUser()
	withBio.Bio = "engineer"

	withSkills := basicUser()
	withSkills.Bio = "engineer"
	withSkills.Skills = "go"

	tests := []struct {
		name     string
		user     *database.User
		contains string
	}{
		{"empty profile", &database.User{ID: "u1"}, "basic profile"},
		{"missing bio", basicUser(), "professional bio"},
		{"missing skills", withBio, "technical and soft skills"},
		{"missing job type", withSkills, "job type preferences"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackSuggestion(tt.user, ProfileScore(tt.user))
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FallbackSuggestion() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}

	if got := FallbackSuggestion(basicUser(), 95); !strings.HasPrefix(got, "Excellent profile!") {
		t.Errorf("top tier = %q", got)
	}
}

func TestAnalyzeWithoutGenerator(t *testing.T) {
	s := NewSuggester(nil, nil)

	a, err := s.Analyze(context.Background(), basicUser())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if a.Source != SourceFallback {
		t.Errorf("Source = %q, want %q", a.Source, SourceFallback)
	}
	if a.Score != 30 {
		t.Errorf("Score = %d, want 30", a.Score)
	}
	if a.Completeness != 0 {
		t.Errorf("Completeness = %v, want 0", a.Completeness)
	}

	if _, err := s.Analyze(context.Background(), nil); err == nil {
		t.Error("expected error for nil user")
	}
}

func TestAnalyzeFallsBackOnGeneratorFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  stubGenerator
		want string
	}{
		{"error", stubGenerator{err: errors.New("connection refused")}, SourceFallback},
		{"blank text", stubGenerator{text: "   "}, SourceFallback},
		{"success", stubGenerator{text: " Add a bio. "}, SourceService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewSuggester(tt.gen, nil).Analyze(context.Background(), basicUser())
			if err != nil {
				t.Fatalf("Analyze() error: %v", err)
			}
			if a.Source != tt.want {
				t.Errorf("Source = %q, want %q", a.Source, tt.want)
			}
			if a.Suggestion == "" {
				t.Error("Suggestion is empty")
			}
		})
	}
}

func TestClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generate":
			if got := r.Header.Get("Authorization"); got != "Bearer key" {
				t.Errorf("Authorization = %q", got)
			}
			var req GenerateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if req.Model != "test-model" || req.Stream {
				t.Errorf("unexpected request: %+v", req)
			}
			if !strings.Contains(req.Prompt, "Profile Completeness Score: 30/100") {
				t.Errorf("prompt missing score: %q", req.Prompt)
			}
			json.NewEncoder(w).Encode(GenerateResponse{Model: req.Model, Response: "Write a bio.", Done: true})
		case "/api/version":
			json.NewEncoder(w).Encode(VersionResponse{Version: "0.5.0"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-model", "key", time.Second)

	if !client.IsRunning(context.Background()) {
		t.Error("IsRunning() = false")
	}

	a, err := NewSuggester(client, nil).Analyze(context.Background(), basicUser())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if a.Source != SourceService || a.Suggestion != "Write a bio." {
		t.Errorf("got %+v", a)
	}
}

func TestClientGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "m", "", time.Second)
	if _, err := client.Generate(context.Background(), "hi"); err == nil {
		t.Error("expected error")
	}
	if client.IsRunning(context.Background()) {
		t.Error("IsRunning() = true for failing service")
	}

	a, err := NewSuggester(client, nil).Analyze(context.Background(), basicUser())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if a.Source != SourceFallback {
		t.Errorf("Source = %q, want fallback", a.Source)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	users := []*database.User{
		basicUser(),
		{ID: "u2"},
		nil,
	}

	var calls int64
	results := NewSuggester(nil, nil).AnalyzeBatch(context.Background(), users, func(current, total int) {
		atomic.AddInt64(&calls, 1)
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
	})

	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Analysis == nil || results[0].Analysis.UserID != "u1" {
		t.Errorf("result 0 = %+v", results[0])
	}
	if results[1].Analysis == nil || results[1].Analysis.UserID != "u2" {
		t.Errorf("result 1 = %+v", results[1])
	}
	if results[2].Error == nil {
		t.Error("expected error for nil user")
	}
	if got := atomic.LoadInt64(&calls); got != 4 {
		t.Errorf("progress called %d times, want 4", got)
	}
}
