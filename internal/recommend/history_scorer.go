package recommend

import (
	"strings"

	"github.com/vijay-prabhu/jobmatch/internal/database"
)

const (
	// profile share of the blended score, by history volume
	profileWeightNew         = 0.6
	profileWeightExperienced = 0.4
	experiencedAfter         = 5

	// history share grows 0.1 per application up to maxHistoryWeight
	historyWeightPerApp = 0.1
	maxHistoryWeight    = 0.6

	// fractions of the history share
	historicalKeywordShare = 0.30
	successfulKeywordShare = 0.40
	companyShare           = 0.15
	locationHistoryShare   = 0.15

	locationRankDecay = 0.1
)

// HistoryScore blends BaseScore with signals mined from the user's history.
// With no applications it equals BaseScore. Each history signal counts only
// when its preference list is non-empty.
func HistoryScore(u *database.User, j *database.Job, prefs Preferences) float64 {
	profileWeight := profileWeightNew
	if prefs.TotalApplications > experiencedAfter {
		profileWeight = profileWeightExperienced
	}
	historyWeight := min(maxHistoryWeight, float64(prefs.TotalApplications)*historyWeightPerApp)

	var acc accumulator
	acc.add(BaseScore(u, j), profileWeight)

	if historyWeight > 0 {
		if len(prefs.HistoricalKeywords) > 0 {
			acc.add(keywordMatch(j, prefs.HistoricalKeywords), historyWeight*historicalKeywordShare)
		}
		if len(prefs.SuccessfulKeywords) > 0 {
			acc.add(keywordMatch(j, prefs.SuccessfulKeywords), historyWeight*successfulKeywordShare)
		}
		if len(prefs.PreferredCompanies) > 0 {
			acc.add(companyMatch(j, prefs.PreferredCompanies), historyWeight*companyShare)
		}
		if len(prefs.PreferredLocations) > 0 {
			acc.add(locationHistoryMatch(j.Location, prefs.PreferredLocations), historyWeight*locationHistoryShare)
		}
	}

	return acc.result()
}

// keywordMatch is the fraction of keywords found in the job title and description
func keywordMatch(j *database.Job, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}

	text := historyText(j)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			matched++
		}
	}

	return float64(matched) / float64(len(keywords))
}

func companyMatch(j *database.Job, companies []string) float64 {
	company := strings.ToLower(j.Company)
	for _, c := range companies {
		if c == company {
			return 1.0
		}
	}
	return 0.0
}

// locationHistoryMatch scores 1.0 for the top-ranked preferred location that
// matches the job location, 0.1 less per rank below it, and 0 when none do
func locationHistoryMatch(jobLocation string, preferred []string) float64 {
	loc := strings.ToLower(jobLocation)
	if loc == "" {
		return 0.0
	}

	for i, p := range preferred {
		if strings.Contains(loc, p) || strings.Contains(p, loc) {
			return max(0.0, 1.0-float64(i)*locationRankDecay)
		}
	}

	return 0.0
}
