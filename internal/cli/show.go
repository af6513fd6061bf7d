package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/chunkplan/internal/element"
	"github.com/danieljhkim/chunkplan/internal/planner"
	"github.com/danieljhkim/chunkplan/internal/report"
)

const (
	// shortKeyLen is the number of key characters shown in tables.
	shortKeyLen = 12

	maxCoreListed = 10
)

func newShowCmd(global *globalOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "show <target> [num-chunks]",
		Short: "Summarize the CI schedule for a target",
		Long:  `Display how a target's pending elements are split into core and chunks.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := buildPlan(cmd.Context(), cmd, global, opts, args)
			if err != nil {
				return err
			}

			if global.jsonOutput {
				return report.WriteJSON(cmd.OutOrStdout(), report.FromResult(result))
			}

			printResult(result)
			return nil
		},
	}

	addPlanFlags(cmd.Flags(), opts)

	return cmd
}

func printResult(result *planner.Result) {
	stats := result.Stats

	PrintSection(fmt.Sprintf("Plan for %s", result.FinalTarget))
	PrintLabelValue("Elements", strconv.Itoa(stats.Total))
	PrintLabelValue("Cached", strconv.Itoa(stats.Cached))
	PrintLabelValue("Core", PrintCount(stats.Core, "element", "elements"))
	PrintLabelValue("Leaf", PrintCount(stats.Leaf, "element", "elements"))

	if result.IsEmpty() {
		fmt.Println()
		PrintSuccess("Nothing to build, every element is cached")
		return
	}

	if len(result.Core) > 0 {
		names := element.Names(result.Core)
		PrintSection("Core")
		PrintList(names[:min(len(names), maxCoreListed)], 1)
		if len(names) > maxCoreListed {
			PrintEmptyState(fmt.Sprintf("... and %d more", len(names)-maxCoreListed))
		}
	}

	PrintSection(fmt.Sprintf("Chunks (%s)", PrintCount(len(result.Chunks), "chunk", "chunks")))
	if len(result.Chunks) == 0 {
		if stats.Leaf > 0 {
			PrintWarning(fmt.Sprintf("%d leaf elements are not assigned to any chunk", stats.Leaf))
		} else {
			PrintEmptyState("No leaf elements")
		}
		return
	}

	rows := make([][]string, 0, len(result.Chunks))
	for _, c := range result.Chunks {
		key := "-"
		if c.CacheKey != "" {
			key = c.CacheKey[:min(len(c.CacheKey), shortKeyLen)]
		}
		rows = append(rows, []string{c.Name, strconv.Itoa(len(c.Elements)), key})
	}
	PrintTable([]string{"NAME", "ELEMENTS", "CACHE KEY"}, rows)
}
