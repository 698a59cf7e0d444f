package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillsMatch(t *testing.T) {
	tests := []struct {
		name   string
		skills string
		text   string
		want   float64
	}{
		{"all exact is boosted and capped", "java, react", "Java developer building React frontends", 1.0},
		{"synonym only", "javascript", "Build apps with React", 0.5},
		{"nothing matches", "go, rust", "Java role", 0.0},
		{"boost above threshold", "java, spring, sql, docker", "java spring sql", 0.825},
		{"empty skills", "", "anything", 0.0},
		{"only separators", " , ,", "anything", 0.0},
		{"reverse synonym lookup", "js", "Node backend services", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SkillsMatch(tt.skills, tt.text), 1e-9)
		})
	}
}

func TestMatchedSkills(t *testing.T) {
	got := MatchedSkills("Java, Python, React", "Senior Java engineer, some react")
	assert.Equal(t, []string{"java", "react"}, got)

	assert.Empty(t, MatchedSkills("", "java"))
}

func TestLocationMatch(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		actual    string
		want      float64
	}{
		{"equal ignoring case", "New York", "new york", 1.0},
		{"containment", "New York", "New York, NY", 0.7},
		{"word overlap", "San Francisco Bay", "San Jose", 1.0 / 3.0},
		{"no overlap", "Berlin", "Paris", 0.0},
		{"empty preferred", "", "Paris", 0.0},
		{"empty job location", "Paris", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LocationMatch(tt.preferred, tt.actual), 1e-9)
		})
	}
}

func TestJobTypeMatch(t *testing.T) {
	tests := []struct {
		name string
		pref string
		desc string
		want float64
	}{
		{"named directly", "Remote", "This is a remote role", 1.0},
		{"implied by phrase", "remote", "Work from home allowed", 0.8},
		{"not mentioned", "contract", "Full-time position", 0.0},
		{"empty preference", "", "remote", 0.0},
		{"empty description", "remote", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JobTypeMatch(tt.pref, tt.desc), 1e-9)
		})
	}
}

func TestExperienceMatch(t *testing.T) {
	tests := []struct {
		name string
		user string
		desc string
		want float64
	}{
		{"same bucket", "Senior engineer", "Looking for a senior developer", 1.0},
		{"adjacent buckets", "junior developer", "mid-level role", 0.6},
		{"distant buckets", "junior", "senior role", 0.3},
		{"no signal either side", "5 years", "Great role", 0.3},
		{"manager implies senior for jobs", "senior", "Engineering manager", 1.0},
		{"multiple levels share one", "junior to mid", "entry level", 1.0},
		{"empty experience", "", "senior", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExperienceMatch(tt.user, tt.desc), 1e-9)
		})
	}
}

func TestTextSimilarity(t *testing.T) {
	assert.InDelta(t, 0.5, TextSimilarity("build scalable systems", "build scalable services"), 1e-9)
	assert.InDelta(t, 1.0, TextSimilarity("Distributed systems!", "systems, distributed"), 1e-9)
	assert.InDelta(t, 0.0, TextSimilarity("a an the", "some words here"), 1e-9)
	assert.InDelta(t, 0.0, TextSimilarity("", "text"), 1e-9)
}
