package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/filesearch/internal/config"
	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/deletion"
	"github.com/lumipallolabs/filesearch/internal/logging"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/report"
	"github.com/lumipallolabs/filesearch/internal/stats"
	"github.com/lumipallolabs/filesearch/internal/ui/tui"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// globalOptions are the flags shared by every subcommand
type globalOptions struct {
	configPath string
	kind       string
	volumes    []string
	skip       []string
}

// NewRootCommand creates and returns the root cobra command for filesearch
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "filesearch",
		Short: "Find files and folders by name across your drives",
		Long: `filesearch walks every drive (or the ones you pick) breadth-first and
lists files or folders whose name contains the text you search for.
A single match can then be deleted after confirmation.

Run without a subcommand to open the terminal UI.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.filesearch/config.yaml)")
	flags.StringVarP(&opts.kind, "kind", "k", "", "match kind: file or folder")
	flags.StringSliceVarP(&opts.volumes, "volume", "v", nil, "volume ID or directory to scan (repeatable, default all)")
	flags.StringSliceVar(&opts.skip, "skip", nil, "extra directory to skip (repeatable)")

	cmd.AddCommand(newScanCommand(opts))
	cmd.AddCommand(newMenuCommand(opts))
	cmd.AddCommand(newDeleteCommand(opts))
	cmd.AddCommand(newStartupCommand(opts))
	cmd.AddCommand(newVolumesCommand(opts))

	return cmd
}

// env is everything a subcommand needs, built from flags and config
type env struct {
	cfg     *config.Config
	stats   *stats.Manager
	ctrl    *core.Controller
	reports *report.Store
	log     io.Closer
}

func (o *globalOptions) setup() (*env, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.MergeWithFlags(o.kind, o.skip); err != nil {
		return nil, err
	}

	logCloser, err := logging.Init(cfg.DebugLog)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	st := stats.NewManager(filepath.Join(config.HomeDir(), "stats.json"))
	if err := st.Load(); err != nil {
		logging.Debug.Printf("Failed to load stats: %v", err)
	}

	ctrl := core.NewController(cfg,
		core.WithStats(st),
		core.WithDeleter(deletion.NewGate()),
	)

	return &env{
		cfg:     cfg,
		stats:   st,
		ctrl:    ctrl,
		reports: report.New(cfg.ReportDir),
		log:     logCloser,
	}, nil
}

func (e *env) close() {
	e.ctrl.Stop()
	_ = e.log.Close()
}

// selectVolumes resolves --volume values. Each value is a volume ID or
// path, or any existing directory to use as a custom root. No values
// selects every volume.
func selectVolumes(all []model.Volume, ids []string) ([]model.Volume, error) {
	if len(ids) == 0 {
		return all, nil
	}

	var selected []model.Volume
	for _, id := range ids {
		if found := model.FilterVolumes(all, []string{id}); len(found) > 0 {
			selected = append(selected, found...)
			continue
		}
		info, err := os.Stat(id)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("unknown volume %q", id)
		}
		selected = append(selected, model.VolumeFromPath(id))
	}
	return selected, nil
}

func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	e, err := opts.setup()
	if err != nil {
		return err
	}
	defer e.close()

	// Custom roots from --volume join the selector next to the drives
	volumes := slices.Clone(e.ctrl.Volumes())
	preselected := e.stats.LastVolumes()
	if len(opts.volumes) > 0 {
		selected, err := selectVolumes(volumes, opts.volumes)
		if err != nil {
			return err
		}
		preselected = nil
		for _, v := range selected {
			if len(model.FilterVolumes(volumes, []string{v.ID})) == 0 {
				volumes = append(volumes, v)
			}
			preselected = append(preselected, v.ID)
		}
	}

	theme := e.cfg.Theme
	if saved := e.stats.Theme(); saved != "" {
		theme = saved
	}

	app := tui.NewApp(e.ctrl, tui.Options{
		Version:     Version,
		Theme:       theme,
		Kind:        e.cfg.Kind(),
		Volumes:     volumes,
		Preselected: preselected,
		StartupDir:  e.cfg.StartupDir,
		Watch:       e.cfg.WatchMatches,
		Stats:       e.stats,
		Reports:     e.reports,
	})

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	_, err = p.Run()
	return err
}
