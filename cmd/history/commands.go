package history

import "github.com/spf13/cobra"

// Actions defines run history operations.
type Actions interface {
	List(cmd *cobra.Command, args []string) error
	Prune(cmd *cobra.Command, args []string) error
}

// Command builds the "history" parent command with its subcommands.
func Command(h Actions) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded preload runs",
		Args:  cobra.NoArgs,
		RunE:  h.List,
	}
	historyCmd.Flags().Int("limit", 20, "max runs to show (0: all)") //nolint:mnd

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop all but the newest runs",
		Args:  cobra.NoArgs,
		RunE:  h.Prune,
	}
	pruneCmd.Flags().Int("keep", 50, "number of runs to keep") //nolint:mnd

	historyCmd.AddCommand(pruneCmd)
	return historyCmd
}
