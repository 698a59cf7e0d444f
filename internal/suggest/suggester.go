package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vijay-prabhu/jobmatch/internal/database"
	"github.com/vijay-prabhu/jobmatch/internal/recommend"
)

// ProgressCallback is called with progress updates during batch analysis
type ProgressCallback func(current, total int)

// concurrentAnalyses bounds parallel calls to the generation service
const concurrentAnalyses = 5

// Source values for Analysis.Source
const (
	SourceService  = "service"
	SourceFallback = "fallback"
)

// Generator produces free text from a prompt. *Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analysis is a profile review for one user
type Analysis struct {
	UserID       string    `json:"user_id"`
	Score        int       `json:"score"`
	Completeness float64   `json:"completeness"`
	Suggestion   string    `json:"suggestion"`
	Source       string    `json:"source"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
}

// Suggester writes profile improvement copy, asking the generation service
// when one is configured and falling back to fixed copy otherwise
type Suggester struct {
	gen    Generator
	logger *slog.Logger
}

// NewSuggester creates a Suggester. A nil generator always uses the fallback.
func NewSuggester(gen Generator, logger *slog.Logger) *Suggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{gen: gen, logger: logger}
}

// ProfileScore weighs profile fields into 0-100 points: 10 each for name,
// email and username, 20 each for bio and skills, 15 for experience, and 5
// each for job type, location and salary
func ProfileScore(u *database.User) int {
	if u == nil {
		return 0
	}

	fields := []struct {
		value  string
		points int
	}{
		{u.FullName, 10},
		{u.Email, 10},
		{u.Username, 10},
		{u.Bio, 20},
		{u.Skills, 20},
		{u.Experience, 15},
		{u.PreferredJobType, 5},
		{u.PreferredLocation, 5},
		{u.SalaryExpectation, 5},
	}

	score := 0
	for _, f := range fields {
		if strings.TrimSpace(f.value) != "" {
			score += f.points
		}
	}
	return min(score, 100)
}

// Analyze scores the user's profile and attaches a suggestion. Generation
// failures are logged and answered with fallback copy; only a nil user is an
// error.
func (s *Suggester) Analyze(ctx context.Context, u *database.User) (*Analysis, error) {
	if u == nil {
		return nil, errors.New("user is required")
	}

	score := ProfileScore(u)
	a := &Analysis{
		UserID:       u.ID,
		Score:        score,
		Completeness: recommend.Completeness(u),
		AnalyzedAt:   time.Now(),
	}

	if s.gen != nil {
		text, err := s.gen.Generate(ctx, buildPrompt(u, score))
		text = strings.TrimSpace(text)
		if err == nil && text != "" {
			a.Suggestion = text
			a.Source = SourceService
			return a, nil
		}
		s.logger.Warn("suggestion service unavailable, using fallback",
			slog.String("user_id", u.ID),
			slog.Any("error", err))
	}

	a.Suggestion = FallbackSuggestion(u, score)
	a.Source = SourceFallback
	return a, nil
}

// BatchResult holds the analysis for a single user in a batch
type BatchResult struct {
	Index    int
	Analysis *Analysis
	Error    error
}

// AnalyzeBatch analyzes several users in parallel with progress reporting.
// Results keep the input order.
func (s *Suggester) AnalyzeBatch(ctx context.Context, users []*database.User, progress ProgressCallback) []BatchResult {
	results := make([]BatchResult, len(users))
	resultChan := make(chan BatchResult, len(users))
	var done int64

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrentAnalyses)

	total := len(users)
	if progress != nil {
		progress(0, total)
	}

	for i, u := range users {
		wg.Add(1)
		go func(index int, u *database.User) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultChan <- BatchResult{Index: index, Error: ctx.Err()}
				return
			}

			a, err := s.Analyze(ctx, u)

			if progress != nil {
				progress(int(atomic.AddInt64(&done, 1)), total)
			}

			resultChan <- BatchResult{Index: index, Analysis: a, Error: err}
		}(i, u)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for r := range resultChan {
		results[r.Index] = r
	}

	return results
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

func buildPrompt(u *database.User, score int) string {
	var b strings.Builder
	b.WriteString("Analyze this job seeker's profile and provide personalized improvement suggestions:\n\n")
	fmt.Fprintf(&b, "Profile Completeness Score: %d/100\n", score)
	fmt.Fprintf(&b, "Name: %s\n", orNotProvided(u.FullName))
	fmt.Fprintf(&b, "Bio: %s\n", orNotProvided(u.Bio))
	fmt.Fprintf(&b, "Skills: %s\n", orNotProvided(u.Skills))
	fmt.Fprintf(&b, "Experience: %s\n", orNotProvided(u.Experience))
	fmt.Fprintf(&b, "Preferred Job Type: %s\n", orNotProvided(u.PreferredJobType))
	fmt.Fprintf(&b, "Preferred Location: %s\n", orNotProvided(u.PreferredLocation))
	b.WriteString("\nProvide a concise, actionable suggestion (max 100 words) to improve their profile for better job matches.")
	return b.String()
}

// FallbackSuggestion picks fixed copy by score tier, naming the most useful
// missing field in the middle tiers
func FallbackSuggestion(u *database.User, score int) string {
	has := func(s string) bool { return strings.TrimSpace(s) != "" }

	switch {
	case score < 30:
		return "Start by completing your basic profile: add your full name, write a professional bio highlighting your key strengths, and list your main skills. These details help employers find and evaluate you."
	case score < 60:
		switch {
		case !has(u.Bio):
			return "Add a compelling professional bio that showcases what you bring. Highlight your key achievements and what makes you stand out to potential employers."
		case !has(u.Skills):
			return "List your technical and soft skills comprehensively. Include programming languages, tools, frameworks and interpersonal abilities relevant to your target roles."
		default:
			return "Expand your experience section with specific achievements and quantifiable results. Detail your responsibilities and impact in previous roles."
		}
	case score < 80:
		switch {
		case !has(u.PreferredJobType):
			return "Add job type preferences to get the most relevant positions. Specify whether you prefer full-time, part-time, contract or remote work."
		case !has(u.PreferredLocation):
			return "Add your preferred work location to get more targeted job recommendations in your desired area, or say if you're open to remote work."
		default:
			return "Fine-tune your profile by adding more specific skills and updating your experience with recent projects. Consider adding salary expectations."
		}
	default:
		return "Excellent profile! Keep it fresh by regularly updating your skills, adding new experiences, and refining your bio to reflect your career growth."
	}
}
