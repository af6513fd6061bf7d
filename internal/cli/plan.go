package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/chunkplan/internal/report"
)

func newPlanCmd(global *globalOptions) *cobra.Command {
	opts := &planOptions{}
	var githubOutput bool

	cmd := &cobra.Command{
		Use:   "plan <target> [num-chunks]",
		Short: "Emit the CI schedule for a target as JSON",
		Long: `Compute the core group, leaf chunks and per-chunk cache keys for a target
and print them as JSON:

  {"core": "...", "matrix": {"chunk0-foo": "..."}, "cache_keys": {...}, "final": "<target>"}

num-chunks overrides num_chunks from the config file; 0 or less produces no
chunks. Malformed plan lines are skipped with a warning on stderr.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := buildPlan(cmd.Context(), cmd, global, opts, args)
			if err != nil {
				return err
			}

			out := report.FromResult(result)
			if githubOutput {
				if err := report.AppendGitHubOutput(out); err != nil {
					return err
				}
			}
			return report.WriteJSON(cmd.OutOrStdout(), out)
		},
	}

	addPlanFlags(cmd.Flags(), opts)
	cmd.Flags().BoolVar(&githubOutput, "github-output", false, "Also append the outputs to the file named by $GITHUB_OUTPUT")

	return cmd
}
