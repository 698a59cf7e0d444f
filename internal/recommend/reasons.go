package recommend

import (
	"fmt"
	"strings"

	"github.com/vijay-prabhu/jobmatch/internal/database"
)

const (
	maxReasons  = 5
	maxInsights = 4

	// NeutralScore is assigned to every job in ModeNeutral
	NeutralScore = 0.65

	defaultReason = "General profile compatibility"
)

var neutralReasons = []string{
	"Recently posted opportunity",
	"Explore this new opening",
	"Great company with growth potential",
}

// matchReasons explains a recommendation: profile matches first, then
// history matches, at most five
func matchReasons(u *database.User, j *database.Job, prefs Preferences) []string {
	var reasons []string

	if present(u.Skills) {
		if matched := MatchedSkills(u.Skills, skillsText(j)); len(matched) > 0 {
			reasons = append(reasons, "Skills match: "+strings.Join(matched, ", "))
		}
	}

	if present(u.PreferredLocation) && present(j.Location) {
		if strings.Contains(strings.ToLower(j.Location), strings.ToLower(strings.TrimSpace(u.PreferredLocation))) {
			reasons = append(reasons, "Location preference: "+j.Location)
		}
	}

	if present(u.PreferredJobType) {
		if strings.Contains(strings.ToLower(j.Description), strings.ToLower(strings.TrimSpace(u.PreferredJobType))) {
			reasons = append(reasons, "Job type match: "+u.PreferredJobType)
		}
	}

	if prefs.TotalApplications > 0 {
		text := historyText(j)
		for _, kw := range prefs.HistoricalKeywords {
			if strings.Contains(text, kw) {
				reasons = append(reasons, "Matches your past interest in "+kw+" roles")
			}
		}
		for _, kw := range prefs.SuccessfulKeywords {
			if strings.Contains(text, kw) {
				reasons = append(reasons, "Similar to your successfully accepted "+kw+" applications")
			}
		}
		if companyMatch(j, prefs.PreferredCompanies) > 0 {
			reasons = append(reasons, "You've previously applied to "+j.Company)
		}
		if locationHistoryMatch(j.Location, prefs.PreferredLocations) > 0 {
			reasons = append(reasons, "Location matches your application history preferences")
		}
	}

	if len(reasons) == 0 {
		return []string{defaultReason}
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// buildInsights summarizes a ranking: history volume first, then the
// average score tier, then missing profile fields, at most four
func buildInsights(u *database.User, recs []Score, prefs Preferences) []string {
	var insights []string

	switch {
	case prefs.TotalApplications == 0:
		insights = append(insights,
			"Start building your job history by applying to positions that match your skills",
			"As you apply to more jobs, recommendations will learn your preferences")
	case prefs.TotalApplications < 5:
		insights = append(insights,
			fmt.Sprintf("Based on your %d applications, we're learning your preferences", prefs.TotalApplications),
			"Apply to more positions to sharpen recommendations for your career interests")
	default:
		insights = append(insights,
			fmt.Sprintf("Analyzed your %d job applications to personalize these recommendations", prefs.TotalApplications))
		if prefs.HasSuccessfulApplications {
			insights = append(insights,
				fmt.Sprintf("Prioritizing jobs similar to your %d successful applications", prefs.SuccessfulApplications))
		}
		if len(prefs.PreferredLocations) > 0 {
			insights = append(insights, "Focusing on your preferred locations: "+strings.Join(prefs.PreferredLocations, ", "))
		}
		if len(prefs.HistoricalKeywords) > 0 {
			insights = append(insights, "Matching your interests in: "+strings.Join(prefs.HistoricalKeywords, ", "))
		}
	}

	insights = append(insights, profileInsights(u, recs)...)

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func profileInsights(u *database.User, recs []Score) []string {
	if len(recs) == 0 {
		return []string{"No personalized recommendations available. Complete your profile to get better matches."}
	}

	var insights []string

	total := 0.0
	for _, r := range recs {
		total += r.Score
	}
	avg := total / float64(len(recs))

	switch {
	case avg > 0.7:
		insights = append(insights, "Excellent matches found! Your profile aligns well with available opportunities.")
	case avg > 0.5:
		insights = append(insights, "Good matches available. Consider updating your profile for even better recommendations.")
	default:
		insights = append(insights, "Basic matches found. Enhance your profile with more skills and preferences for better results.")
	}

	if !present(u.Skills) {
		insights = append(insights, "Add your skills to get more targeted job recommendations.")
	}
	if !present(u.PreferredLocation) {
		insights = append(insights, "Set your preferred location to find jobs in your desired area.")
	}
	if !present(u.Bio) {
		insights = append(insights, "Add a professional bio to improve matching accuracy.")
	}

	return insights
}

// neutralScores gives every job NeutralScore and the canned reasons, newest
// postings first
func neutralScores(jobs []database.Job) []Score {
	scores := make([]Score, 0, len(jobs))
	for _, j := range jobs {
		reasons := make([]string, len(neutralReasons))
		copy(reasons, neutralReasons)
		scores = append(scores, Score{Job: j, Score: NeutralScore, Reasons: reasons})
	}
	sortScores(scores)
	return scores
}

func neutralInsights() []string {
	return []string{"Showing recently posted opportunities; personalized scoring is turned off"}
}
