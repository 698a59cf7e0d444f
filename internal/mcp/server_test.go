package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vijay-prabhu/jobmatch/internal/config"
	"github.com/vijay-prabhu/jobmatch/internal/database"
	"github.com/vijay-prabhu/jobmatch/internal/recommend"
	"github.com/vijay-prabhu/jobmatch/internal/suggest"
)

func setupServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return New(db, config.Default(), nil, nil), db
}

func seed(t *testing.T, db *database.DB) *database.User {
	t.Helper()
	ctx := context.Background()

	poster := &database.User{Username: "poster"}
	seeker := &database.User{Username: "seeker", FullName: "Sam Seeker", Skills: "java, react"}
	for _, u := range []*database.User{poster, seeker} {
		if err := db.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	jobs := []*database.Job{
		{Title: "Java developer", Description: "Build React frontends", Company: "Acme", PostedBy: poster.ID},
		{Title: "Python developer", Description: "Django apis", Company: "Globex", PostedBy: poster.ID},
	}
	for _, j := range jobs {
		if err := db.CreateJob(ctx, j); err != nil {
			t.Fatalf("create job: %v", err)
		}
	}

	return seeker
}

// call sends one JSON-RPC request through Serve and decodes the response
func call(t *testing.T, s *Server, method string, params interface{}) jsonRPCResponse {
	t.Helper()

	req := map[string]interface{}{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		req["params"] = params
	}
	line, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := s.Serve(context.Background(), bytes.NewReader(append(line, '\n')), &out); err != nil {
		t.Fatalf("Serve() error: %v", err)
	}

	var resp jsonRPCResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response %q: %v", out.String(), err)
	}
	return resp
}

// toolText calls a tool and returns its text content and error flag
func toolText(t *testing.T, s *Server, name string, args interface{}) (string, bool) {
	t.Helper()

	resp := call(t, s, "tools/call", map[string]interface{}{"name": name, "arguments": args})
	if resp.Error != nil {
		t.Fatalf("rpc error: %+v", resp.Error)
	}

	raw, _ := json.Marshal(resp.Result)
	var result callToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
	if len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Content))
	}
	return result.Content[0].Text, result.IsError
}

func TestInitializeAndList(t *testing.T) {
	s, _ := setupServer(t)

	resp := call(t, s, "initialize", nil)
	if resp.Error != nil {
		t.Fatalf("initialize error: %+v", resp.Error)
	}

	resp = call(t, s, "tools/list", nil)
	raw, _ := json.Marshal(resp.Result)
	var tools toolsListResult
	if err := json.Unmarshal(raw, &tools); err != nil {
		t.Fatal(err)
	}
	if len(tools.Tools) != len(s.handlers) {
		t.Errorf("listed %d tools, registered %d handlers", len(tools.Tools), len(s.handlers))
	}
	for _, tool := range tools.Tools {
		if _, ok := s.handlers[tool.Name]; !ok {
			t.Errorf("tool %s has no handler", tool.Name)
		}
	}
}

func TestUnknownMethodAndParseError(t *testing.T) {
	s, _ := setupServer(t)

	resp := call(t, s, "bogus/method", nil)
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Errorf("expected method not found, got %+v", resp.Error)
	}

	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader("{not json\n"), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "-32700") {
		t.Errorf("expected parse error, got %q", out.String())
	}
}

func TestNotificationHasNoResponse(t *testing.T) {
	s, _ := setupServer(t)

	var out bytes.Buffer
	in := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n"
	if err := s.Serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRecommendJobsTool(t *testing.T) {
	s, db := setupServer(t)
	seeker := seed(t, db)

	text, isErr := toolText(t, s, "recommend_jobs", map[string]interface{}{"user_id": "seeker"})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}

	var res recommend.Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(res.Recommendations))
	}
	if res.Recommendations[0].Job.Title != "Java developer" {
		t.Errorf("top recommendation = %q", res.Recommendations[0].Job.Title)
	}

	// apply to the top job; it must drop out
	if err := db.CreateApplication(context.Background(), &database.Application{
		UserID: seeker.ID, JobID: res.Recommendations[0].Job.ID,
	}); err != nil {
		t.Fatal(err)
	}

	text, _ = toolText(t, s, "recommend_jobs", map[string]interface{}{"user_id": seeker.ID, "limit": 5})
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0].Job.Title != "Python developer" {
		t.Errorf("unexpected recommendations after applying: %+v", res.Recommendations)
	}
}

func TestRecommendJobsToolErrors(t *testing.T) {
	s, db := setupServer(t)
	seed(t, db)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing user", map[string]interface{}{}},
		{"unknown user", map[string]interface{}{"user_id": "nobody"}},
		{"negative limit", map[string]interface{}{"user_id": "seeker", "limit": -1}},
		{"bad mode", map[string]interface{}{"user_id": "seeker", "mode": "random"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, isErr := toolText(t, s, "recommend_jobs", tt.args); !isErr {
				t.Error("expected tool error")
			}
		})
	}
}

func TestProfileAnalysisTool(t *testing.T) {
	s, db := setupServer(t)
	seed(t, db)

	text, isErr := toolText(t, s, "profile_analysis", map[string]interface{}{"user_id": "seeker"})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}

	var a suggest.Analysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		t.Fatal(err)
	}
	if a.Source != suggest.SourceFallback || a.Suggestion == "" {
		t.Errorf("unexpected analysis: %+v", a)
	}
}

func TestListJobsToolAndResource(t *testing.T) {
	s, db := setupServer(t)
	seed(t, db)

	text, isErr := toolText(t, s, "list_jobs", map[string]interface{}{"limit": 1})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	var jobs []database.Job
	if err := json.Unmarshal([]byte(text), &jobs); err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Python developer" {
		t.Errorf("expected newest job only, got %+v", jobs)
	}

	resp := call(t, s, "resources/read", map[string]string{"uri": recentJobsURI})
	if resp.Error != nil {
		t.Fatalf("resource error: %+v", resp.Error)
	}
	raw, _ := json.Marshal(resp.Result)
	if !strings.Contains(string(raw), "Java developer") {
		t.Errorf("resource missing job: %s", raw)
	}

	resp = call(t, s, "resources/read", map[string]string{"uri": "jobmatch://nope"})
	if resp.Error == nil {
		t.Error("expected error for unknown resource")
	}
}
