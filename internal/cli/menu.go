package cli

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/deletion"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/spf13/cobra"
)

func newMenuCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive text menu",
		Args:  cobra.NoArgs,
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

			m := &menu{
				con:        newConsole(cmd.OutOrStdout(), cmd.InOrStdin()),
				ctrl:       e.ctrl,
				volumes:    volumes,
				startupDir: e.cfg.StartupDir,
			}
			return m.run(cmd.Context())
		},
	}
}

// menu is the numbered console menu
type menu struct {
	con        *console
	ctrl       *core.Controller
	volumes    []model.Volume
	startupDir string
}

func (m *menu) run(ctx context.Context) error {
	for {
		m.con.heading("System File Searcher")
		m.con.println("1. Search for a file")
		m.con.println("2. Search for a folder")
		m.con.println("3. List Startup folder files")
		m.con.println("4. Delete file by path")
		m.con.println("5. Exit")

		choice, err := m.con.ask("\nSelect an option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.searchFor(ctx, model.KindFile, "Enter part of a file name: ")
		case "2":
			m.searchFor(ctx, model.KindFolder, "Enter part of a folder name: ")
		case "3":
			if err := listStartup(m.con, m.startupDir); err != nil {
				m.con.fail("Error: %v", err)
			}
		case "4":
			m.deleteByPath()
		case "5":
			m.con.println("Exiting...")
			return nil
		default:
			m.con.fail("Invalid option.")
		}
	}
}

func (m *menu) searchFor(ctx context.Context, kind model.MatchKind, prompt string) {
	target, err := m.con.ask(prompt)
	if err != nil || target == "" {
		return
	}

	volumes := m.chooseVolumes()
	if volumes == nil {
		m.con.fail("Invalid drive selection.")
		return
	}

	set, err := search(ctx, m.con, m.ctrl, target, kind, volumes)
	if err != nil {
		m.con.fail("Error: %v", err)
		return
	}

	// Folders are never offered for deletion here
	if kind == model.KindFile {
		promptDelete(m.con, m.ctrl, set)
	}
}

// chooseVolumes returns one volume, all of them, or nil for a bad choice
func (m *menu) chooseVolumes() []model.Volume {
	m.con.heading("Select Drive")
	for i, v := range m.volumes {
		m.con.printf("%d. %s\n", i+1, v.Path)
	}
	m.con.printf("%d. All drives\n", len(m.volumes)+1)

	answer, err := m.con.ask("\nChoose drive: ")
	if err != nil {
		return nil
	}
	choice, err := strconv.Atoi(answer)
	if err != nil {
		return nil
	}

	switch {
	case choice >= 1 && choice <= len(m.volumes):
		return m.volumes[choice-1 : choice]
	case choice == len(m.volumes)+1 && len(m.volumes) > 0:
		return m.volumes
	}
	return nil
}

func (m *menu) deleteByPath() {
	m.con.heading("Delete File by Path")
	path, err := m.con.ask("Enter full file path: ")
	if err != nil || path == "" {
		return
	}

	err = m.ctrl.ConfirmAndDeletePath(path, func(found string) bool {
		m.con.printf("\nFile found: %s\n", found)
		return m.con.confirm("Delete this file?")
	})
	if errors.Is(err, deletion.ErrInvalidSelection) {
		m.con.fail("File not found or invalid path.")
		return
	}
	printDeleteResult(m.con, err)
}
