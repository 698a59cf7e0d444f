package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/jobmatch/internal/config"
	"github.com/vijay-prabhu/jobmatch/internal/database"
	"github.com/vijay-prabhu/jobmatch/internal/output"
	"github.com/vijay-prabhu/jobmatch/internal/suggest"
)

var profileCmd = &cobra.Command{
	Use:   "profile <user>...",
	Short: "Analyze profile completeness and suggest improvements",
	Long: `Score one or more profiles and suggest the most useful improvement.

When [suggest] is enabled the text-generation service writes the suggestion;
otherwise, or if it fails, fixed copy for the score tier is used.

Examples:
  jobmatch profile jane
  jobmatch profile jane sam alex`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

// newSuggester builds a Suggester from config; the service is only wired
// when enabled
func newSuggester(cfg *config.Config) *suggest.Suggester {
	if !cfg.Suggest.Enabled {
		return suggest.NewSuggester(nil, logger)
	}
	client := suggest.NewClient(cfg.SuggestURL(), cfg.Suggest.Model, cfg.Suggest.APIKey(), cfg.Suggest.Timeout())
	return suggest.NewSuggester(client, logger)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	users := make([]*database.User, 0, len(args))
	for _, id := range args {
		u, err := findUser(cmd, db, id)
		if err != nil {
			return err
		}
		users = append(users, u)
	}

	suggester := newSuggester(cfg)

	if len(users) == 1 {
		a, err := suggester.Analyze(cmd.Context(), users[0])
		if err != nil {
			return err
		}
		return output.Output(outputFmt, a)
	}

	term := NewTerminal()
	results := suggester.AnalyzeBatch(cmd.Context(), users, func(current, total int) {
		if term.IsTerminal {
			term.ClearLine()
			fmt.Fprintf(os.Stderr, "%s Analyzing profiles %d/%d", term.Spinner(), current, total)
		}
	})
	term.ClearLine()

	analyses := make([]*suggest.Analysis, 0, len(results))
	for _, r := range results {
		if r.Error != nil {
			return r.Error
		}
		analyses = append(analyses, r.Analysis)
	}

	return output.Output(outputFmt, analyses)
}
