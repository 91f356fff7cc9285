package history

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	cmdcore "github.com/projecteru2/preload/cmd/core"
	"github.com/projecteru2/preload/config"
	runhistory "github.com/projecteru2/preload/history"
)

type Handler struct {
	ConfProvider func() *config.Config
}

func (h Handler) List(cmd *cobra.Command, _ []string) error {
	ctx, conf, err := cmdcore.BaseHandler{ConfProvider: h.ConfProvider}.Init(cmd)
	if err != nil {
		return err
	}
	store, err := runhistory.New(conf)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tBASE URL\tLOADED\tFAILED\tSIZE\tDURATION\tSTARTED")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\t%s\t%s\t%s\n",
			r.ID[:min(8, len(r.ID))],
			r.BaseURL,
			r.Loaded, r.Total,
			r.Failed,
			cmdcore.FormatSize(r.Bytes),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
			r.StartedAt.Local().Format(time.DateTime),
		)
	}
	return w.Flush()
}

func (h Handler) Prune(cmd *cobra.Command, _ []string) error {
	ctx, conf, err := cmdcore.BaseHandler{ConfProvider: h.ConfProvider}.Init(cmd)
	if err != nil {
		return err
	}
	store, err := runhistory.New(conf)
	if err != nil {
		return err
	}
	keep, _ := cmd.Flags().GetInt("keep")
	dropped, err := store.Prune(ctx, keep)
	if err != nil {
		return err
	}
	log.WithFunc("cmd.prune").Infof(ctx, "dropped %d run(s), kept at most %d", dropped, keep)
	return nil
}
