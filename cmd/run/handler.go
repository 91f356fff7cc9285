package run

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"

	cmdcore "github.com/projecteru2/preload/cmd/core"
	"github.com/projecteru2/preload/config"
	runhistory "github.com/projecteru2/preload/history"
	"github.com/projecteru2/preload/manifest"
	"github.com/projecteru2/preload/preload"
)

// ErrImagesFailed is returned by run --strict when any image failed.
var ErrImagesFailed = errors.New("some images failed to preload")

type Handler struct {
	ConfProvider func() *config.Config
}

func (h Handler) Run(cmd *cobra.Command, args []string) error {
	ctx, conf, err := cmdcore.BaseHandler{ConfProvider: h.ConfProvider}.Init(cmd)
	if err != nil {
		return err
	}
	logger := log.WithFunc("cmd.run")

	runConf, err := runConfig(cmd, conf)
	if err != nil {
		return err
	}

	var opts preload.Options
	var refs []preload.Reference
	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		m, err := manifest.Load(ctx, path)
		if err != nil {
			return err
		}
		opts = m.Options
		refs = append(refs, m.References...)
	}
	for _, arg := range args {
		refs = append(refs, preload.Literal(arg))
	}
	if base, _ := cmd.Flags().GetString("base-url"); base != "" {
		opts.BaseURL = base
	}
	opts.Finished = func(_ map[string]bool, loaded, failed int) {
		logger.Infof(ctx, "finished: %d loaded, %d failed", loaded, failed)
	}

	report, err := preload.New(runConf).Preload(ctx, opts, refs...)
	if err != nil {
		return err
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		store, err := runhistory.New(runConf)
		if err != nil {
			return err
		}
		if err := store.Add(ctx, report); err != nil {
			logger.Warnf(ctx, "cannot record run: %v", err)
		}
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON || !cmdcore.IsTerminal(os.Stdout) {
		err = writeJSON(cmd.OutOrStdout(), report)
	} else {
		err = writeTable(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return err
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && report.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrImagesFailed, report.Failed, report.Total())
	}
	return nil
}

// runConfig applies per-run flag overrides to a copy of conf.
func runConfig(cmd *cobra.Command, conf *config.Config) (*config.Config, error) {
	c := *conf
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		c.PoolSize = n
	}
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		c.TimeoutSeconds = max(1, int(d/time.Second))
	}
	if loc, _ := cmd.Flags().GetString("location"); loc != "" {
		c.Location = loc
	}
	if c.Location == "" {
		loc, err := config.WorkdirLocation()
		if err != nil {
			return nil, err
		}
		c.Location = loc
	}
	return &c, nil
}

func writeJSON(w io.Writer, report *preload.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeTable(w io.Writer, report *preload.Report) error {
	paths := make([]string, 0, len(report.Images))
	for path := range report.Images {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tSTATUS\tFORMAT\tSIZE\tDIMENSIONS\tERROR")
	for _, path := range paths {
		img := report.Images[path]
		status, dims, size := "failed", "-", "-"
		if img.Loaded {
			status = "loaded"
			dims = fmt.Sprintf("%dx%d", img.Width, img.Height)
			size = cmdcore.FormatSize(img.Size)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			path, status, orDash(img.Format), size, dims, orDash(img.Error))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d loaded, %d failed, %s in %s (base %s)\n",
		report.Loaded, report.Failed, cmdcore.FormatSize(report.Bytes),
		report.Elapsed().Round(time.Millisecond), report.BaseURL)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
