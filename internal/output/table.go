package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/jobmatch/internal/database"
	"github.com/vijay-prabhu/jobmatch/internal/recommend"
	"github.com/vijay-prabhu/jobmatch/internal/suggest"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.User:
		return usersTable(w, v)
	case *database.User:
		return userDetail(w, v)
	case []database.Job:
		return jobsTable(w, v)
	case *database.Job:
		return jobDetail(w, v)
	case []database.Application:
		return applicationsTable(w, v)
	case *database.Application:
		return applicationDetail(w, v)
	case *recommend.Result:
		return recommendationsTable(w, v)
	case *suggest.Analysis:
		return analysisDetail(w, v)
	case []*suggest.Analysis:
		return analysesTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

// Percent renders a [0,1] score as a whole percentage
func Percent(score float64) int {
	return int(math.Round(score * 100))
}

func usersTable(w io.Writer, users []database.User) error {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Username", "Name", "Skills", "Location")
	for _, u := range users {
		if err := table.Append([]string{
			u.ID,
			u.Username,
			truncate(u.FullName, 25),
			truncate(u.Skills, 40),
			truncate(u.PreferredLocation, 20),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func userDetail(w io.Writer, u *database.User) error {
	fmt.Fprintf(w, "ID:          %s\n", u.ID)
	printField(w, "Name:        ", u.FullName)
	printField(w, "Username:    ", u.Username)
	printField(w, "Email:       ", u.Email)
	printField(w, "Title:       ", u.JobTitle)
	printField(w, "Skills:      ", u.Skills)
	printField(w, "Experience:  ", u.Experience)
	if u.YearsExperience != nil {
		fmt.Fprintf(w, "Years:       %d\n", *u.YearsExperience)
	}
	printField(w, "Location:    ", u.PreferredLocation)
	printField(w, "Job type:    ", u.PreferredJobType)
	printField(w, "Salary:      ", u.SalaryExpectation)
	printField(w, "Industries:  ", u.Industries)
	printField(w, "Certs:       ", u.Certifications)
	fmt.Fprintf(w, "Complete:    %.0f%%\n", recommend.Completeness(u))
	if u.Bio != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, wordWrap(u.Bio, 78))
	}
	return nil
}

func jobsTable(w io.Writer, jobs []database.Job) error {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Company", "Location", "Type", "Posted")
	for _, j := range jobs {
		if err := table.Append([]string{
			strconv.FormatInt(j.ID, 10),
			truncate(j.Title, 35),
			truncate(j.Company, 20),
			truncate(j.Location, 20),
			j.JobType,
			j.CreatedAt.Format("Jan 02"),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func jobDetail(w io.Writer, j *database.Job) error {
	fmt.Fprintf(w, "Job #%d:     %s\n", j.ID, j.Title)
	fmt.Fprintf(w, "Company:     %s\n", j.Company)
	printField(w, "Location:    ", j.Location)
	printField(w, "Type:        ", j.JobType)
	printField(w, "Experience:  ", j.Experience)
	printField(w, "Salary:      ", j.Salary)
	printField(w, "Skills:      ", j.Skills)
	fmt.Fprintf(w, "Posted by:   %s\n", j.PostedBy)
	fmt.Fprintf(w, "Posted:      %s\n", j.CreatedAt.Format("Jan 02, 2006"))
	if j.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, wordWrap(j.Description, 78))
	}
	return nil
}

func applicationsTable(w io.Writer, apps []database.Application) error {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "User", "Job", "Title", "Company", "Status", "Applied")
	for _, a := range apps {
		if err := table.Append([]string{
			a.ID,
			a.UserID,
			strconv.FormatInt(a.JobID, 10),
			truncate(a.JobTitle, 30),
			truncate(a.Company, 20),
			string(a.Status),
			a.AppliedAt.Format("Jan 02"),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func applicationDetail(w io.Writer, a *database.Application) error {
	fmt.Fprintf(w, "Application: %s\n", a.ID)
	fmt.Fprintf(w, "User:        %s\n", a.UserID)
	fmt.Fprintf(w, "Job:         #%d %s", a.JobID, a.JobTitle)
	if a.Company != "" {
		fmt.Fprintf(w, " at %s", a.Company)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Status:      %s\n", a.Status)
	printField(w, "Resume:      ", a.ResumePath)
	fmt.Fprintf(w, "Applied:     %s\n", a.AppliedAt.Format("Jan 02, 2006"))
	return nil
}

func recommendationsTable(w io.Writer, r *recommend.Result) error {
	fmt.Fprintf(w, "Profile completeness: %.0f%%  |  Jobs analyzed: %d\n\n",
		r.ProfileCompleteness, r.TotalJobsAnalyzed)

	if len(r.Recommendations) == 0 {
		fmt.Fprintln(w, "No recommendations.")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Match", "ID", "Title", "Company", "Location", "Why")
		for _, s := range r.Recommendations {
			if err := table.Append([]string{
				fmt.Sprintf("%d%%", Percent(s.Score)),
				strconv.FormatInt(s.Job.ID, 10),
				truncate(s.Job.Title, 30),
				truncate(s.Job.Company, 20),
				truncate(s.Job.Location, 18),
				truncate(strings.Join(s.Reasons, "; "), 60),
			}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(r.Insights) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Insights:")
		for _, in := range r.Insights {
			fmt.Fprintf(w, "  - %s\n", in)
		}
	}
	return nil
}

func analysisDetail(w io.Writer, a *suggest.Analysis) error {
	fmt.Fprintf(w, "User:          %s\n", a.UserID)
	fmt.Fprintf(w, "Profile score: %d/100\n", a.Score)
	fmt.Fprintf(w, "Completeness:  %.0f%%\n", a.Completeness)
	fmt.Fprintln(w)
	fmt.Fprintln(w, wordWrap(a.Suggestion, 78))
	return nil
}

func analysesTable(w io.Writer, analyses []*suggest.Analysis) error {
	if len(analyses) == 0 {
		fmt.Fprintln(w, "No profiles analyzed.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("User", "Score", "Complete", "Suggestion")
	for _, a := range analyses {
		if err := table.Append([]string{
			a.UserID,
			strconv.Itoa(a.Score),
			fmt.Sprintf("%.0f%%", a.Completeness),
			truncate(a.Suggestion, 70),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func printField(w io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(w, "%s%s\n", label, value)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// wordWrap wraps text at the specified width
func wordWrap(text string, width int) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if len(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
		result.WriteString("\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}
