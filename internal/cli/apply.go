package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobmatch/internal/database"
	"github.com/vijay-prabhu/jobmatch/internal/output"
)

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job",
	Long: `Record an application. New applications start as Pending.

Examples:
  jobmatch apply --user jane 12
  jobmatch apply --user jane --resume ~/cv.pdf 12`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

var statusCmd = &cobra.Command{
	Use:   "status <application-id> <Pending|Accepted|Rejected>",
	Short: "Set an application's status",
	Long: `Set the outcome of an application. Accepted applications weigh most
when learning a user's preferences.

Examples:
  jobmatch status 3f2a... Accepted`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

var (
	applyUser   string
	applyResume string
)

func init() {
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(statusCmd)

	applyCmd.Flags().StringVarP(&applyUser, "user", "u", "", "Applicant user ID or username (required)")
	applyCmd.Flags().StringVar(&applyResume, "resume", "", "Path to the resume sent")
	applyCmd.MarkFlagRequired("user")
}

func runApply(cmd *cobra.Command, args []string) error {
	jobID, err := parseJobID(args[0])
	if err != nil {
		return err
	}

	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := findUser(cmd, db, applyUser)
	if err != nil {
		return err
	}
	j, err := findJob(cmd, db, jobID)
	if err != nil {
		return err
	}
	if j.PostedBy == u.ID {
		return fmt.Errorf("cannot apply to your own posting (job %d)", j.ID)
	}

	app := &database.Application{
		UserID:     u.ID,
		JobID:      j.ID,
		JobTitle:   j.Title,
		Company:    j.Company,
		ResumePath: applyResume,
	}
	if err := db.CreateApplication(cmd.Context(), app); err != nil {
		return fmt.Errorf("failed to apply: %w", err)
	}

	logger.Debug("application created",
		slog.String("application_id", app.ID),
		slog.String("user_id", u.ID),
		slog.Int64("job_id", j.ID))

	return output.Output(outputFmt, app)
}

func runStatus(cmd *cobra.Command, args []string) error {
	status, ok := database.ParseApplicationStatus(args[1])
	if !ok {
		return fmt.Errorf("invalid status %q (use Pending, Accepted or Rejected)", args[1])
	}

	_, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.UpdateApplicationStatus(cmd.Context(), args[0], status); err != nil {
		return err
	}

	app, err := db.GetApplication(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	return output.Output(outputFmt, app)
}
