package recommend

import (
	"strings"

	"github.com/vijay-prabhu/jobmatch/internal/database"
)

// profileFields lists the profile fields counted by Completeness. Identity
// fields (name, email, username) are not counted.
func profileFields(u *database.User) []string {
	return []string{
		u.Skills,
		u.Experience,
		u.PreferredLocation,
		u.SalaryExpectation,
		u.Bio,
		u.PreferredJobType,
	}
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Completeness returns the percentage (0-100) of the six profile fields that
// are filled in
func Completeness(u *database.User) float64 {
	if u == nil {
		return 0
	}

	fields := profileFields(u)
	filled := 0
	for _, f := range fields {
		if present(f) {
			filled++
		}
	}

	return float64(filled) / float64(len(fields)) * 100
}
