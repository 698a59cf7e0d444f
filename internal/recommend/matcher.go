package recommend

import (
	"regexp"
	"strings"
)

// skillSynonyms maps a skill to related terms that earn partial credit.
// Lookups run both ways: a user skill's related terms found in the job text,
// or a job-text skill whose related terms include the user skill.
var skillSynonyms = map[string][]string{
	"javascript": {"js", "node", "react", "angular", "vue"},
	"js":         {"javascript", "node", "react", "angular", "vue"},
	"python":     {"django", "flask", "fastapi", "py"},
	"java":       {"spring", "springboot", "hibernate"},
	"c#":         {"csharp", "dotnet", ".net", "asp.net"},
	"react":      {"javascript", "js", "frontend", "reactjs"},
	"angular":    {"javascript", "js", "frontend", "typescript"},
	"node":       {"nodejs", "javascript", "js", "backend"},
	"sql":        {"mysql", "postgresql", "database", "db"},
	"html":       {"frontend", "web", "css"},
	"css":        {"frontend", "web", "html", "scss", "sass"},
}

// jobTypeSynonyms maps a preferred job type to phrases that imply it
var jobTypeSynonyms = map[string][]string{
	"full-time": {"full-time", "full time", "permanent", "regular"},
	"part-time": {"part-time", "part time", "flexible", "hourly"},
	"contract":  {"contract", "contractor", "freelance", "temporary", "temp"},
	"remote":    {"remote", "work from home", "telecommute", "distributed"},
}

const (
	exactSkillWeight   = 1.0
	partialSkillWeight = 0.5
	skillBoostAbove    = 0.7
	skillBoostFactor   = 1.1
)

// splitSkills splits a comma-separated list into trimmed, lower-cased,
// non-empty skills
func splitSkills(skills string) []string {
	var out []string
	for _, s := range strings.Split(strings.ToLower(skills), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SkillsMatch scores how many of the comma-separated user skills appear in
// the job text. Exact containment counts 1.0, a synonym hit counts 0.5.
// Scores above 0.7 get a 10% boost capped at 1.0.
func SkillsMatch(userSkills, jobText string) float64 {
	skills := splitSkills(userSkills)
	if len(skills) == 0 {
		return 0.0
	}

	text := strings.ToLower(jobText)
	exact, partial := 0, 0
	for _, skill := range skills {
		if strings.Contains(text, skill) {
			exact++
		} else if partialSkillMatch(skill, text) {
			partial++
		}
	}

	score := (float64(exact)*exactSkillWeight + float64(partial)*partialSkillWeight) / float64(len(skills))
	if score > skillBoostAbove {
		score = min(1.0, score*skillBoostFactor)
	}
	return score
}

// MatchedSkills returns the user skills found verbatim in the job text, in
// the order the user listed them
func MatchedSkills(userSkills, jobText string) []string {
	text := strings.ToLower(jobText)
	var matched []string
	for _, skill := range splitSkills(userSkills) {
		if strings.Contains(text, skill) {
			matched = append(matched, skill)
		}
	}
	return matched
}

// partialSkillMatch expects skill and text to be lower-cased already
func partialSkillMatch(skill, text string) bool {
	for _, term := range skillSynonyms[skill] {
		if strings.Contains(text, term) {
			return true
		}
	}

	for key, related := range skillSynonyms {
		if !strings.Contains(text, key) {
			continue
		}
		for _, r := range related {
			if r == skill {
				return true
			}
		}
	}

	return false
}

// LocationMatch compares a preferred location with a job location: 1.0 when
// equal, 0.7 when one contains the other, otherwise the share of words
// (longer than two letters) they have in common. Empty input scores 0.
func LocationMatch(preferred, actual string) float64 {
	pref := strings.ToLower(strings.TrimSpace(preferred))
	job := strings.ToLower(strings.TrimSpace(actual))
	if pref == "" || job == "" {
		return 0.0
	}

	if pref == job {
		return 1.0
	}
	if strings.Contains(job, pref) || strings.Contains(pref, job) {
		return 0.7
	}

	prefWords := strings.Fields(pref)
	jobWords := strings.Fields(job)

	matches := 0
	for _, pw := range prefWords {
		if len(pw) <= 2 {
			continue
		}
		for _, jw := range jobWords {
			if pw == jw {
				matches++
				break
			}
		}
	}

	return min(1.0, float64(matches)/float64(max(len(prefWords), len(jobWords))))
}

// JobTypeMatch returns 1.0 when the description names the preferred type,
// 0.8 when it contains a phrase implying it, else 0
func JobTypeMatch(preferredType, description string) float64 {
	pref := strings.ToLower(strings.TrimSpace(preferredType))
	desc := strings.ToLower(description)
	if pref == "" || desc == "" {
		return 0.0
	}

	if strings.Contains(desc, pref) {
		return 1.0
	}

	for _, kw := range jobTypeSynonyms[pref] {
		if strings.Contains(desc, kw) {
			return 0.8
		}
	}

	return 0.0
}

type level uint8

const (
	levelEntry level = 1 << iota
	levelMid
	levelSenior
)

var (
	entryTerms     = []string{"entry", "junior", "beginner"}
	midTerms       = []string{"mid", "intermediate", "3-5", "2-4"}
	seniorTerms    = []string{"senior", "lead", "5+", "expert"}
	jobSeniorTerms = []string{"manager"}
)

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// levels returns every seniority bucket the text signals. A text may signal
// several, e.g. "junior to mid-level".
func levels(text string, isJob bool) level {
	text = strings.ToLower(text)
	var l level
	if containsAny(text, entryTerms) {
		l |= levelEntry
	}
	if containsAny(text, midTerms) {
		l |= levelMid
	}
	if containsAny(text, seniorTerms) || (isJob && containsAny(text, jobSeniorTerms)) {
		l |= levelSenior
	}
	return l
}

// ExperienceMatch compares the seniority signalled by the user's experience
// with the job description: 1.0 for the same bucket, 0.6 for adjacent
// buckets, and 0.3 otherwise, including when neither side signals anything.
func ExperienceMatch(userExperience, description string) float64 {
	if userExperience == "" || description == "" {
		return 0.0
	}

	user := levels(userExperience, false)
	job := levels(description, true)

	if user&job != 0 {
		return 1.0
	}

	adjacent := (user&levelEntry != 0 && job&levelMid != 0) ||
		(user&levelMid != 0 && job&(levelEntry|levelSenior) != 0) ||
		(user&levelSenior != 0 && job&levelMid != 0)
	if adjacent {
		return 0.6
	}

	return 0.3
}

var nonWord = regexp.MustCompile(`\W+`)

// tokenSet lower-cases text, splits on non-word characters, and keeps
// tokens longer than three characters
func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range nonWord.Split(strings.ToLower(text), -1) {
		if len(w) > 3 {
			set[w] = true
		}
	}
	return set
}

// TextSimilarity is the Jaccard similarity of the two texts' token sets
func TextSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	inter := 0
	for w := range setA {
		if setB[w] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter

	return float64(inter) / float64(union)
}
