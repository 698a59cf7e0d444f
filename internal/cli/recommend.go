package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobmatch/internal/output"
	"github.com/vijay-prabhu/jobmatch/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend jobs for a user",
	Long: `Rank open job postings for a user by profile fit and application
history. Jobs the user posted or already applied to are never shown.

Examples:
  jobmatch recommend --user jane
  jobmatch recommend --user jane --limit 5 -o json
  jobmatch recommend --user jane --mode neutral   # newest postings, no scoring`,
	RunE: runRecommend,
}

var (
	recommendUser  string
	recommendLimit int
	recommendMode  string
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVarP(&recommendUser, "user", "u", "", "User ID or username (required)")
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", -1, "Number of recommendations (default from config)")
	recommendCmd.Flags().StringVar(&recommendMode, "mode", "", "Scoring mode: history or neutral (default from config)")
	recommendCmd.MarkFlagRequired("user")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Flags().Changed("limit") && recommendLimit < 0 {
		return fmt.Errorf("%w: --limit must be >= 0", recommend.ErrInvalidArgument)
	}

	modeName := recommendMode
	if modeName == "" {
		modeName = cfg.Recommend.Mode
	}
	mode, err := recommend.ParseMode(modeName)
	if err != nil {
		return err
	}

	u, err := findUser(cmd, db, recommendUser)
	if err != nil {
		return err
	}

	engine := recommend.New(db, db, recommend.Config{Mode: mode, Logger: logger})
	result, err := engine.Rank(cmd.Context(), u, cfg.Recommend.ClampLimit(recommendLimit))
	if err != nil {
		return err
	}

	if err := output.Output(outputFmt, result); err != nil {
		return err
	}

	if outputFmt != "json" && len(result.Recommendations) > 0 {
		top := result.Recommendations[0]
		term := NewTerminal()
		pct := output.Percent(top.Score)
		fmt.Println()
		fmt.Printf("Top match: %s %s at %s\n",
			term.Color(ScoreColor(pct), fmt.Sprintf("%d%%", pct)), top.Job.Title, top.Job.Company)
	}

	return nil
}
