package cli

import (
	"errors"

	"github.com/lumipallolabs/filesearch/internal/startup"
	"github.com/spf13/cobra"
)

func newStartupCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "startup",
		Short: "List the programs in your startup folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.close()

			con := newConsole(cmd.OutOrStdout(), cmd.InOrStdin())
			return listStartup(con, e.cfg.StartupDir)
		},
	}
}

// listStartup prints the startup folder. dir overrides the platform folder.
func listStartup(con *console, dir string) error {
	if dir == "" {
		var err error
		if dir, err = startup.Dir(); err != nil {
			return err
		}
	}

	con.heading("Startup Folder Files")
	names, err := startup.List(dir)
	if errors.Is(err, startup.ErrNotFound) {
		con.warn("Startup folder not found.")
		return nil
	}
	if err != nil {
		return err
	}

	if len(names) == 0 {
		con.println("(empty)")
	}
	for _, name := range names {
		con.printf("- %s\n", name)
	}
	con.faint.Fprintf(con.out, "%s\n", dir)
	return nil
}
