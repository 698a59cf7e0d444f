package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vijay-prabhu/jobmatch/internal/database"
	"github.com/vijay-prabhu/jobmatch/internal/recommend"
)

const (
	defaultJobListLimit = 20
	recentJobsLimit     = 20
)

func (s *Server) registerHandlers() {
	s.handlers["recommend_jobs"] = s.handleRecommendJobs
	s.handlers["profile_analysis"] = s.handleProfileAnalysis
	s.handlers["list_jobs"] = s.handleListJobs
}

func (s *Server) lookupUser(ctx context.Context, id string) (*database.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user not found: %s", id)
	}
	return u, nil
}

type recommendJobsParams struct {
	UserID string `json:"user_id"`
	Limit  *int   `json:"limit"`
	Mode   string `json:"mode"`
}

func (s *Server) handleRecommendJobs(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p recommendJobsParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	u, err := s.lookupUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	modeName := p.Mode
	if modeName == "" {
		modeName = s.config.Recommend.Mode
	}
	mode, err := recommend.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	limit := -1
	if p.Limit != nil {
		if *p.Limit < 0 {
			return nil, fmt.Errorf("%w: limit must be >= 0", recommend.ErrInvalidArgument)
		}
		limit = *p.Limit
	}
	limit = s.config.Recommend.ClampLimit(limit)

	engine := recommend.New(s.store, s.store, recommend.Config{Mode: mode, Logger: s.logger})
	return engine.Rank(ctx, u, limit)
}

type profileAnalysisParams struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleProfileAnalysis(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p profileAnalysisParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	u, err := s.lookupUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	return s.suggester.Analyze(ctx, u)
}

type listJobsParams struct {
	PostedBy string `json:"posted_by"`
	Limit    int    `json:"limit"`
}

func (s *Server) handleListJobs(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listJobsParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := database.JobListOptions{Limit: defaultJobListLimit}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}
	if p.PostedBy != "" {
		opts.PostedBy = &p.PostedBy
	}

	jobs, err := s.store.ListJobsWithOptions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return jobs, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case recentJobsURI:
		return s.getResourceRecentJobs(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceRecentJobs(ctx context.Context) (string, error) {
	jobs, err := s.store.ListJobsWithOptions(ctx, database.JobListOptions{Limit: recentJobsLimit})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Recent Jobs\n===========\n\n")

	if len(jobs) == 0 {
		b.WriteString("No jobs posted yet. Run 'jobmatch job add' to post one.\n")
		return b.String(), nil
	}

	for _, j := range jobs {
		fmt.Fprintf(&b, "- #%d %s | %s", j.ID, j.Title, j.Company)
		if j.Location != "" {
			fmt.Fprintf(&b, " | %s", j.Location)
		}
		if j.JobType != "" {
			fmt.Fprintf(&b, " | %s", j.JobType)
		}
		fmt.Fprintf(&b, " | posted %s\n", j.CreatedAt.Format("Jan 02, 2006"))
	}

	return b.String(), nil
}
