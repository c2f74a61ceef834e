package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/spf13/cobra"
)

func newVolumesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "volumes",
		Short: "List the volumes filesearch can scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.close()

			fmt.Fprintln(cmd.OutOrStdout(), volumeTable(e.ctrl.Volumes()))
			return nil
		},
	}
}

func volumeTable(volumes []model.Volume) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "PATH", "LABEL", "USED", "SIZE")

	for _, v := range volumes {
		used, size := "-", "-"
		if v.TotalBytes > 0 {
			used = fmt.Sprintf("%.0f%%", v.UsedPercent())
			size = formatBytes(v.TotalBytes)
		}
		t.Row(v.ID, v.Path, v.Label, used, size)
	}
	return t.String()
}
