package recommend

import (
	"strings"

	"github.com/vijay-prabhu/jobmatch/internal/database"
)

// Base scorer weights
const (
	skillsWeight     = 0.40
	locationWeight   = 0.20
	jobTypeWeight    = 0.15
	experienceWeight = 0.15
	bioWeight        = 0.10
)

// accumulator sums weighted factor scores together with the weights that
// applied, so a result can be renormalized over the factors actually used
type accumulator struct {
	score float64
	max   float64
}

func (a *accumulator) add(value, weight float64) {
	a.score += value * weight
	a.max += weight
}

// result returns score/max, or 0 when no weight applied
func (a *accumulator) result() float64 {
	if a.max <= 0 {
		return 0.0
	}
	return a.score / a.max
}

// skillsText is the job text user skills are matched against: title,
// description and the dedicated skills field when set
func skillsText(j *database.Job) string {
	text := j.Title + " " + j.Description
	if present(j.Skills) {
		text += " " + j.Skills
	}
	return text
}

// BaseScore rates a job against the user's profile in [0,1]. Skills always
// count; location, job type, experience and bio count only when the user has
// filled them in, and the sum is renormalized over the weights that applied.
func BaseScore(u *database.User, j *database.Job) float64 {
	var acc accumulator

	acc.add(SkillsMatch(u.Skills, skillsText(j)), skillsWeight)

	if present(u.PreferredLocation) {
		acc.add(LocationMatch(u.PreferredLocation, j.Location), locationWeight)
	}
	if present(u.PreferredJobType) {
		acc.add(JobTypeMatch(u.PreferredJobType, j.Description), jobTypeWeight)
	}
	if present(u.Experience) {
		acc.add(ExperienceMatch(u.Experience, j.Description), experienceWeight)
	}
	if present(u.Bio) {
		acc.add(TextSimilarity(u.Bio, j.Description), bioWeight)
	}

	return acc.result()
}

// historyText is the lower-cased title and description mined for keywords
func historyText(j *database.Job) string {
	return strings.ToLower(j.Title + " " + j.Description)
}
