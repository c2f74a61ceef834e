package cli

import (
	"errors"
	"fmt"

	"github.com/lumipallolabs/filesearch/internal/deletion"
	"github.com/lumipallolabs/filesearch/internal/report"
	"github.com/spf13/cobra"
)

func newDeleteCommand(opts *globalOptions) *cobra.Command {
	var (
		yes       bool
		reportRef string
		index     int
	)

	cmd := &cobra.Command{
		Use:   "delete [PATH]",
		Short: "Delete one file by path, or one match of a saved report",
		Long: `Delete removes a single file after asking for confirmation.

With --report and --index it deletes match N (1-based) of a report saved
by "filesearch scan --save". The report may be given as a file, an ID
prefix or "latest". Folders are only removed when empty.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reportRef == "" && len(args) != 1 {
				return errors.New("give a file path, or --report with --index")
			}
			if reportRef != "" && len(args) > 0 {
				return errors.New("a path and --report can't be combined")
			}

			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.close()

			con := newConsole(cmd.OutOrStdout(), cmd.InOrStdin())
			confirm := func(path string) bool {
				if yes {
					return true
				}
				con.printf("\nFile found: %s\n", path)
				return con.confirm("Delete this file?")
			}

			if reportRef != "" {
				path, err := e.reports.Resolve(reportRef)
				if err != nil {
					return err
				}
				set, err := report.Load(path)
				if err != nil {
					return err
				}
				e.ctrl.SetResult(set)
				err = e.ctrl.ConfirmAndDelete(index, confirm)
				return finishDelete(con, err)
			}

			return finishDelete(con, e.ctrl.ConfirmAndDeletePath(args[0], confirm))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "don't ask for confirmation")
	cmd.Flags().StringVar(&reportRef, "report", "", "saved report: file, ID prefix or \"latest\"")
	cmd.Flags().IntVar(&index, "index", 0, "1-based match number in the report")

	return cmd
}

// finishDelete prints benign outcomes and returns real failures
func finishDelete(con *console, err error) error {
	switch {
	case err == nil:
		con.success("File deleted successfully.")
		return nil
	case errors.Is(err, deletion.ErrNotConfirmed):
		con.println("File not deleted.")
		return nil
	case errors.Is(err, deletion.ErrNotRegularFile), errors.Is(err, deletion.ErrInvalidSelection):
		return fmt.Errorf("file not found or invalid path: %w", err)
	default:
		return err
	}
}
