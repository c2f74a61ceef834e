package cli

import (
	"context"

	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/logging"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/report"
	"github.com/spf13/cobra"
)

// maxReportsCompared bounds how many saved reports are opened when looking
// for the previous run of the same search
const maxReportsCompared = 20

func newScanCommand(opts *globalOptions) *cobra.Command {
	var (
		save     bool
		offerDel bool
		sizes    bool
	)

	cmd := &cobra.Command{
		Use:   "scan TARGET",
		Short: "Search volumes for names containing TARGET",
		Long: `Scan walks the selected volumes breadth-first and prints every file
(or folder, with --kind folder) whose name contains TARGET, ignoring case.

Press Ctrl+C to stop early; matches found so far are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.close()

			volumes, err := selectVolumes(e.ctrl.Volumes(), opts.volumes)
			if err != nil {
				return err
			}

			con := newConsole(cmd.OutOrStdout(), cmd.InOrStdin())
			set, err := search(cmd.Context(), con, e.ctrl, args[0], e.cfg.Kind(), volumes)
			if err != nil {
				return err
			}

			if sizes {
				printSizes(cmd.Context(), con, e.ctrl, set)
			}
			if save {
				if err := saveReport(con, e.reports, set); err != nil {
					return err
				}
			}
			if offerDel {
				promptDelete(con, e.ctrl, set)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save the results as a report for later deletion by index")
	cmd.Flags().BoolVar(&offerDel, "delete", false, "offer to delete one match afterwards")
	cmd.Flags().BoolVar(&sizes, "sizes", false, "show sizes, measuring folder matches")

	return cmd
}

// printSizes lists matches with their size, walking folder matches
func printSizes(ctx context.Context, con *console, ctrl *core.Controller, set *core.ResultSet) {
	if set.Len() == 0 {
		return
	}
	con.heading("Sizes")

	var total int64
	for i, m := range set.Matches {
		size := m.Size
		if m.IsDir() {
			usage, err := ctrl.Measure(ctx, i+1)
			if err != nil {
				con.printf("%4d. %10s  %s\n", i+1, "?", m.Path)
				continue
			}
			size = usage.Bytes
		}
		total += size
		con.printf("%4d. %10s  %s\n", i+1, formatBytes(size), m.Path)
	}
	con.bold.Fprintf(con.out, "%6s %10s\n", "total", formatBytes(total))
}

// saveReport stores set and prints what changed since the previous saved
// run of the same search
func saveReport(con *console, store *report.Store, set *core.ResultSet) error {
	previous := findPrevious(store, set.Query)

	path, err := store.Save(set)
	if err != nil {
		return err
	}
	con.success("Saved report %s", set.ID)
	con.faint.Fprintf(con.out, "%s\n", path)

	if previous == nil {
		return nil
	}
	d := report.Compare(previous, set)
	if d.IsEmpty() {
		con.println("No changes since the last report.")
		return nil
	}
	con.printf("Since %s: %d new, %d gone, %d grew, %d shrunk\n",
		previous.Finished.Format("2006-01-02 15:04"), len(d.Added), len(d.Removed), len(d.Grew), len(d.Shrunk))
	for _, m := range d.Added {
		con.green.Fprintf(con.out, "  + %s\n", m.Path)
	}
	for _, m := range d.Removed {
		con.red.Fprintf(con.out, "  - %s\n", m.Path)
	}
	return nil
}

// findPrevious returns the newest saved report for the same target and kind
func findPrevious(store *report.Store, q model.ScanQuery) *core.ResultSet {
	infos, err := store.List()
	if err != nil {
		logging.Debug.Printf("Failed to list reports: %v", err)
		return nil
	}

	for i := len(infos) - 1; i >= 0 && i >= len(infos)-maxReportsCompared; i-- {
		set, err := report.Load(infos[i].Path)
		if err != nil {
			logging.Debug.Printf("Skipping report %s: %v", infos[i].Path, err)
			continue
		}
		if set.Query.Target == q.Target && set.Query.Kind == q.Kind {
			return set
		}
	}
	return nil
}
