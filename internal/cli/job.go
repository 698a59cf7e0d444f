package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobmatch/internal/database"
	"github.com/vijay-prabhu/jobmatch/internal/output"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage job postings",
}

var jobAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Post a job",
	Long: `Post a job. The poster never sees their own postings in recommendations.

Examples:
  jobmatch job add --title "Backend Engineer" --company Acme --posted-by jane \
    --location Berlin --description "Senior Go role, full-time" --skills "go, sql"`,
	RunE: runJobAdd,
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings, newest first",
	RunE:  runJobList,
}

var jobShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show a job posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobShow,
}

var jobApplicantsCmd = &cobra.Command{
	Use:   "applicants <job-id>",
	Short: "List applications submitted for a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobApplicants,
}

var (
	jobFlags    database.Job
	jobPostedBy string
	jobListBy   string
	jobLimit    int
)

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(jobAddCmd, jobListCmd, jobShowCmd, jobApplicantsCmd)

	jobAddCmd.Flags().StringVar(&jobFlags.Title, "title", "", "Job title (required)")
	jobAddCmd.Flags().StringVar(&jobFlags.Company, "company", "", "Company name (required)")
	jobAddCmd.Flags().StringVar(&jobPostedBy, "posted-by", "", "Poster user ID or username (required)")
	jobAddCmd.Flags().StringVar(&jobFlags.Description, "description", "", "Job description")
	jobAddCmd.Flags().StringVar(&jobFlags.Location, "location", "", "Location")
	jobAddCmd.Flags().StringVar(&jobFlags.Salary, "salary", "", "Salary range")
	jobAddCmd.Flags().StringVar(&jobFlags.JobType, "job-type", "", "Job type")
	jobAddCmd.Flags().StringVar(&jobFlags.Experience, "experience", "", "Required experience")
	jobAddCmd.Flags().StringVar(&jobFlags.Skills, "skills", "", "Comma-separated required skills")
	jobAddCmd.MarkFlagRequired("title")
	jobAddCmd.MarkFlagRequired("company")
	jobAddCmd.MarkFlagRequired("posted-by")

	jobListCmd.Flags().StringVar(&jobListBy, "posted-by", "", "Only jobs posted by this user ID or username")
	jobListCmd.Flags().IntVar(&jobLimit, "limit", 0, "Maximum number of results")
}

func parseJobID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid job id: %s", s)
	}
	return id, nil
}

func runJobAdd(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	poster, err := findUser(cmd, db, jobPostedBy)
	if err != nil {
		return err
	}

	j := jobFlags
	j.PostedBy = poster.ID

	if err := db.CreateJob(cmd.Context(), &j); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return output.Output(outputFmt, &j)
}

func runJobList(cmd *cobra.Command, args []string) error {
	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	opts := database.JobListOptions{Limit: jobLimit}
	if jobListBy != "" {
		poster, err := findUser(cmd, db, jobListBy)
		if err != nil {
			return err
		}
		opts.PostedBy = &poster.ID
	}

	jobs, err := db.ListJobsWithOptions(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	return output.Output(outputFmt, jobs)
}

func runJobShow(cmd *cobra.Command, args []string) error {
	id, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	j, err := findJob(cmd, db, id)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, j)
}

func runJobApplicants(cmd *cobra.Command, args []string) error {
	id, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := findJob(cmd, db, id); err != nil {
		return err
	}

	apps, err := db.ListApplicationsByJob(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	return output.Output(outputFmt, apps)
}

func findJob(cmd *cobra.Command, db *database.DB, id int64) (*database.Job, error) {
	j, err := db.GetJob(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if j == nil {
		return nil, fmt.Errorf("job not found: %d", id)
	}
	return j, nil
}
