package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vijay-prabhu/jobmatch/internal/database"
)

func TestBaseScore_SkillsOnly(t *testing.T) {
	u := &database.User{ID: "u1", Skills: "java, react"}

	jobA := &database.Job{ID: 1, Title: "Java developer", Description: "Build React frontends"}
	jobB := &database.Job{ID: 2, Title: "Python developer", Description: "Django apis"}

	assert.InDelta(t, 1.0, BaseScore(u, jobA), 1e-9)
	assert.InDelta(t, 0.0, BaseScore(u, jobB), 1e-9)
}

func TestBaseScore_Renormalizes(t *testing.T) {
	u := &database.User{
		ID:                "u1",
		Skills:            "go",
		PreferredLocation: "Berlin",
	}
	j := &database.Job{ID: 1, Title: "Go engineer", Location: "Munich"}

	// skills 1.0 at 0.40, location 0 at 0.20
	assert.InDelta(t, 0.40/0.60, BaseScore(u, j), 1e-9)
}

func TestBaseScore_UsesJobSkillsField(t *testing.T) {
	u := &database.User{ID: "u1", Skills: "kubernetes"}
	j := &database.Job{ID: 1, Title: "Platform engineer", Skills: "Kubernetes, Terraform"}

	assert.InDelta(t, 1.0, BaseScore(u, j), 1e-9)
}

func TestBaseScore_Range(t *testing.T) {
	users := []*database.User{
		{ID: "empty"},
		{ID: "full", Skills: "go, sql", Experience: "senior", Bio: "Backend systems engineer",
			PreferredLocation: "Remote", PreferredJobType: "full-time"},
		{ID: "bio", Bio: "I love distributed databases"},
	}
	jobs := []*database.Job{
		{ID: 1},
		{ID: 2, Title: "Go backend", Description: "senior full-time remote backend systems", Location: "Remote"},
		{ID: 3, Title: "Chef", Description: "cook meals", Location: "Paris"},
	}

	for _, u := range users {
		for _, j := range jobs {
			s := BaseScore(u, j)
			assert.GreaterOrEqual(t, s, 0.0, "user %s job %d", u.ID, j.ID)
			assert.LessOrEqual(t, s, 1.0, "user %s job %d", u.ID, j.ID)
		}
	}
}

func TestHistoryScore_NoHistoryEqualsBase(t *testing.T) {
	u := &database.User{ID: "u1", Skills: "go, sql", PreferredLocation: "Berlin", Bio: "backend services"}
	j := &database.Job{ID: 1, Title: "Go engineer", Description: "backend services with sql", Location: "Berlin"}

	assert.InDelta(t, BaseScore(u, j), HistoryScore(u, j, Preferences{}), 1e-9)
}

func TestHistoryScore_RewardsHistory(t *testing.T) {
	u := &database.User{ID: "u1", Skills: "go"}
	prefs := Preferences{
		TotalApplications:  3,
		HistoricalKeywords: []string{"engineer"},
		PreferredCompanies: []string{"acme"},
	}

	matching := &database.Job{ID: 1, Title: "Go engineer", Company: "Acme"}
	other := &database.Job{ID: 2, Title: "Go developer", Company: "Globex"}

	assert.Greater(t, HistoryScore(u, matching, prefs), HistoryScore(u, other, prefs))

	s := HistoryScore(u, matching, prefs)
	assert.GreaterOrEqual(t, s, 0.0)
	assert.LessOrEqual(t, s, 1.0)
}

func TestLocationHistoryMatch(t *testing.T) {
	preferred := []string{"berlin", "paris", "london"}

	assert.InDelta(t, 1.0, locationHistoryMatch("Berlin", preferred), 1e-9)
	assert.InDelta(t, 0.9, locationHistoryMatch("Paris, France", preferred), 1e-9)
	assert.InDelta(t, 0.8, locationHistoryMatch("London", preferred), 1e-9)
	assert.InDelta(t, 0.0, locationHistoryMatch("Tokyo", preferred), 1e-9)
	assert.InDelta(t, 0.0, locationHistoryMatch("", preferred), 1e-9)
}

func TestCompleteness(t *testing.T) {
	tests := []struct {
		name string
		user *database.User
		want float64
	}{
		{"nil user", nil, 0},
		{"nothing filled", &database.User{ID: "u1", FullName: "Ada", Email: "ada@example.com"}, 0},
		{"two of six", &database.User{ID: "u1", Skills: "go", Bio: "hi"}, 100.0 / 3.0},
		{"whitespace counts as missing", &database.User{ID: "u1", Skills: "go", Bio: "   "}, 100.0 / 6.0},
		{"all filled", &database.User{
			ID: "u1", Skills: "go", Experience: "senior", PreferredLocation: "Berlin",
			SalaryExpectation: "100k", Bio: "hi", PreferredJobType: "remote",
		}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Completeness(tt.user), 1e-9)
		})
	}
}
