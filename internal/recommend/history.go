package recommend

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/vijay-prabhu/jobmatch/internal/database"
)

// JobLookup resolves a job by ID. A nil job with a nil error means not found.
type JobLookup interface {
	GetJob(ctx context.Context, id int64) (*database.Job, error)
}

// Preferences summarizes what a user's application history says about them.
// It is derived per request and never stored.
type Preferences struct {
	PreferredCompanies        []string `json:"preferred_companies"`
	PreferredLocations        []string `json:"preferred_locations"`
	HistoricalKeywords        []string `json:"historical_keywords"`
	SuccessfulKeywords        []string `json:"successful_keywords"`
	HasSuccessfulApplications bool     `json:"has_successful_applications"`
	TotalApplications         int      `json:"total_applications"`
	SuccessfulApplications    int      `json:"successful_applications"`
}

// maxPreferredLocations caps how many history locations are kept
const maxPreferredLocations = 5

// domainKeywords is the vocabulary mined from past job titles and descriptions
var domainKeywords = []string{
	"developer", "engineer", "manager", "analyst", "designer", "consultant",
	"specialist", "coordinator", "director", "lead", "senior", "junior",
	"software", "data", "marketing", "sales", "finance", "hr", "operations",
}

var domainKeywordSet = func() map[string]bool {
	set := make(map[string]bool, len(domainKeywords))
	for _, kw := range domainKeywords {
		set[kw] = true
	}
	return set
}()

// Analyzer mines application history into Preferences
type Analyzer struct {
	jobs   JobLookup
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer resolving jobs through the given lookup
func NewAnalyzer(jobs JobLookup, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{jobs: jobs, logger: logger}
}

// Analyze builds the user's Preferences from their applications. Records
// whose job cannot be resolved are skipped; they still count toward the
// application totals.
func (a *Analyzer) Analyze(ctx context.Context, u *database.User, history []database.Application) Preferences {
	prefs := Preferences{TotalApplications: len(history)}
	if len(history) == 0 {
		return prefs
	}

	companyFreq := make(map[string]int)
	locationFreq := make(map[string]int)
	var titles, descriptions, acceptedTitles []string

	for _, app := range history {
		if app.IsAccepted() {
			prefs.SuccessfulApplications++
		}

		job, err := a.jobs.GetJob(ctx, app.JobID)
		if err != nil || job == nil {
			a.logger.Debug("skipping application in history",
				slog.String("user_id", userID(u)),
				slog.String("application_id", app.ID),
				slog.Int64("job_id", app.JobID),
				slog.Any("error", err))
			continue
		}

		if present(job.Company) {
			companyFreq[strings.ToLower(job.Company)]++
		}
		if present(job.Location) {
			locationFreq[strings.ToLower(job.Location)]++
		}

		titles = append(titles, strings.ToLower(job.Title))
		if present(job.Description) {
			descriptions = append(descriptions, strings.ToLower(job.Description))
		}

		if app.IsAccepted() {
			acceptedTitles = append(acceptedTitles, strings.ToLower(job.Title))
			prefs.HasSuccessfulApplications = true
		}
	}

	for company, n := range companyFreq {
		if n > 1 {
			prefs.PreferredCompanies = append(prefs.PreferredCompanies, company)
		}
	}
	sort.Strings(prefs.PreferredCompanies)

	prefs.PreferredLocations = topByFrequency(locationFreq, maxPreferredLocations)
	prefs.HistoricalKeywords = extractKeywords(titles, descriptions)
	prefs.SuccessfulKeywords = extractKeywords(acceptedTitles, nil)

	return prefs
}

// topByFrequency returns up to n keys ordered by descending count, ties by name
func topByFrequency(freq map[string]int, n int) []string {
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// extractKeywords keeps a domain keyword if it is a word of any title or a
// substring of any description. The result is sorted.
func extractKeywords(titles, descriptions []string) []string {
	found := make(map[string]bool)

	for _, title := range titles {
		for _, word := range strings.Fields(title) {
			word = lettersOnly(strings.ToLower(word))
			if len(word) > 2 && domainKeywordSet[word] {
				found[word] = true
			}
		}
	}

	for _, desc := range descriptions {
		for _, kw := range domainKeywords {
			if strings.Contains(desc, kw) {
				found[kw] = true
			}
		}
	}

	keywords := make([]string, 0, len(found))
	for kw := range found {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func userID(u *database.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
