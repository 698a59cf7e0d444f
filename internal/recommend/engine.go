package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vijay-prabhu/jobmatch/internal/database"
)

var (
	// ErrInvalidArgument is returned for caller contract violations such as a
	// negative limit
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDependencyUnavailable wraps a failure of the job or application store
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// JobStore is the read-only job query contract the engine consumes
type JobStore interface {
	JobLookup
	ListJobs(ctx context.Context) ([]database.Job, error)
}

// ApplicationStore is the read-only application query contract
type ApplicationStore interface {
	ListApplicationsByUser(ctx context.Context, userID string) ([]database.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID int64) ([]database.Application, error)
}

// Mode selects how jobs are scored
type Mode string

const (
	// ModeHistory scores with HistoryScore
	ModeHistory Mode = "history"
	// ModeNeutral is a degraded mode: every job gets the same neutral score
	// and generic reasons, most recent postings first
	ModeNeutral Mode = "neutral"
)

// ParseMode validates a mode name; empty selects ModeHistory
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeHistory:
		return ModeHistory, nil
	case ModeNeutral:
		return ModeNeutral, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q (use history or neutral)", ErrInvalidArgument, s)
	}
}

// Config configures an Engine
type Config struct {
	Mode   Mode
	Logger *slog.Logger
}

// Score is one ranked job with its explanation
type Score struct {
	Job     database.Job `json:"job"`
	Score   float64      `json:"score"`
	Reasons []string     `json:"reasons"`
}

// Result is the outcome of one ranking request
type Result struct {
	Recommendations     []Score  `json:"recommendations"`
	ProfileCompleteness float64  `json:"profile_completeness"`
	Insights            []string `json:"insights"`
	TotalJobsAnalyzed   int      `json:"total_jobs_analyzed"`
}

// Engine ranks job postings for a user. It holds no per-request state and is
// safe for concurrent use when its stores are.
type Engine struct {
	jobs     JobStore
	apps     ApplicationStore
	analyzer *Analyzer
	mode     Mode
	logger   *slog.Logger
}

// New creates an Engine over the given stores
func New(jobs JobStore, apps ApplicationStore, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeHistory
	}

	return &Engine{
		jobs:     jobs,
		apps:     apps,
		analyzer: NewAnalyzer(jobs, logger),
		mode:     mode,
		logger:   logger,
	}
}

// Mode returns the scoring mode the engine runs in
func (e *Engine) Mode() Mode {
	return e.mode
}

// Completeness returns the user's profile completeness percentage
func (e *Engine) Completeness(u *database.User) float64 {
	return Completeness(u)
}

// Rank returns up to limit recommended jobs for the user, best first. Jobs the
// user applied to or posted are never recommended. A limit of 0 returns no
// recommendations but still reports the eligible pool size.
func (e *Engine) Rank(ctx context.Context, u *database.User, limit int) (*Result, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidArgument, limit)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user is required", ErrInvalidArgument)
	}

	allJobs, err := e.jobs.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %w", ErrDependencyUnavailable, err)
	}
	history, err := e.apps.ListApplicationsByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %w", ErrDependencyUnavailable, err)
	}

	available := eligibleJobs(u, allJobs, history)

	var (
		ranked   []Score
		insights []string
	)
	switch e.mode {
	case ModeNeutral:
		ranked = truncate(neutralScores(available), limit)
		insights = neutralInsights()
	default:
		prefs := e.analyzer.Analyze(ctx, u, history)
		ranked = make([]Score, 0, len(available))
		for i := range available {
			ranked = append(ranked, Score{Job: available[i], Score: HistoryScore(u, &available[i], prefs)})
		}
		sortScores(ranked)
		ranked = truncate(ranked, limit)
		for i := range ranked {
			ranked[i].Reasons = matchReasons(u, &ranked[i].Job, prefs)
		}
		insights = buildInsights(u, ranked, prefs)
	}

	e.logger.Debug("ranked jobs",
		slog.String("user_id", u.ID),
		slog.String("mode", string(e.mode)),
		slog.Int("total_jobs", len(allJobs)),
		slog.Int("eligible", len(available)),
		slog.Int("returned", len(ranked)))

	return &Result{
		Recommendations:     ranked,
		ProfileCompleteness: Completeness(u),
		Insights:            insights,
		TotalJobsAnalyzed:   len(available),
	}, nil
}

// eligibleJobs drops jobs the user already applied to or posted
func eligibleJobs(u *database.User, jobs []database.Job, history []database.Application) []database.Job {
	applied := make(map[int64]bool, len(history))
	for _, app := range history {
		applied[app.JobID] = true
	}

	available := make([]database.Job, 0, len(jobs))
	for _, j := range jobs {
		if applied[j.ID] || j.PostedBy == u.ID {
			continue
		}
		available = append(available, j)
	}
	return available
}

// sortScores orders by score descending, then by job ID descending so newer
// postings win ties
func sortScores(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Job.ID > scores[j].Job.ID
	})
}

func truncate(scores []Score, limit int) []Score {
	if len(scores) > limit {
		return scores[:limit]
	}
	return scores
}
