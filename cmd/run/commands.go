package run

import (
	"github.com/spf13/cobra"
)

// Actions defines batch preload operations.
type Actions interface {
	Run(cmd *cobra.Command, args []string) error
}

// Commands builds the preload command set.
func Commands(h Actions) []*cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [flags] [PATH...]",
		Short: "Preload images relative to a base URL and report the outcome",
		Example: `  preload run --base-url https://cdn.example.com/img logo.png hero.jpg
  preload run --manifest batch.yaml extra.png`,
		RunE: h.Run,
	}
	runCmd.Flags().String("base-url", "", "base URL prefixed to every path (default: directory of --location)")
	runCmd.Flags().String("location", "", "document URL relative paths resolve against (default: current directory)")
	runCmd.Flags().String("manifest", "", "YAML/JSON/TOML batch file with options and images")
	runCmd.Flags().Int("concurrency", 0, "max in-flight loads (0: config pool_size)")
	runCmd.Flags().Duration("timeout", 0, "per-image fetch timeout (0: config timeout_seconds)")
	runCmd.Flags().Bool("json", false, "print the report as JSON")
	runCmd.Flags().Bool("no-history", false, "do not record this run in history")
	runCmd.Flags().Bool("strict", false, "exit non-zero when any image fails")

	return []*cobra.Command{runCmd}
}
