package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/Akashdeep-Patra/modpanel/internal/app"
	"github.com/Akashdeep-Patra/modpanel/internal/backend"
	"github.com/Akashdeep-Patra/modpanel/internal/common"
	"github.com/Akashdeep-Patra/modpanel/internal/config"
	"github.com/Akashdeep-Patra/modpanel/internal/logging"
	"github.com/Akashdeep-Patra/modpanel/internal/virtual"
	"github.com/Akashdeep-Patra/modpanel/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Demo catalogue used when no feed is configured.
const (
	demoItems   = 5000
	demoHistory = 800
	demoSeed    = 7
)

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "modpanel:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modpanel",
		Short: "A terminal control panel for a game mod",
		Long: `modpanel shows the mod's registered items and action history as two
long, virtualized lists. It reads snapshots from a JSON or YAML feed file
(reloading when the file changes) or from a built-in demo catalogue.

Pointer input goes through the same click and wheel correction a broken
embedded host needs: set --input-scale to make the terminal report
mis-scaled pointer coordinates and watch the corrector repair them.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"modpanel %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())
	rootCmd.AddCommand(buildWindowCmd())

	f := rootCmd.Flags()
	f.StringP("config", "c", "", "Config file (default $XDG_CONFIG_HOME/modpanel/config.yaml)")
	f.StringP("feed", "f", "", "JSON or YAML snapshot feed (default: demo catalogue)")
	f.Float64("zoom", 0, "UI zoom factor (overrides config)")
	f.Float64("input-scale", 0, "Pointer coordinate scale the host applies (overrides config)")

	return rootCmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("feed") {
		cfg.Feed, _ = cmd.Flags().GetString("feed")
	}
	if cmd.Flags().Changed("zoom") {
		cfg.UI.Zoom, _ = cmd.Flags().GetFloat64("zoom")
	}
	if cmd.Flags().Changed("input-scale") {
		cfg.UI.InputScale, _ = cmd.Flags().GetFloat64("input-scale")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	var src backend.Service
	if cfg.Feed != "" {
		if _, err := os.Stat(cfg.Feed); err != nil {
			return fmt.Errorf("opening feed: %w", err)
		}
		src = backend.NewFileService(cfg.Feed)
	} else {
		src = backend.NewDemoService(demoItems, demoHistory, demoSeed)
	}

	// Deduplicate reads inside one burst of refreshes.
	svc := backend.NewCachedService(src, cfg.RefreshTTL)

	model := app.New(app.Deps{Service: svc, Config: cfg, Logger: logger})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.Feed != "" {
		stop := startWatcher(p, cfg, logger)
		defer stop()
	}

	logger.Info("panel started", "source", svc.Source(), "zoom", cfg.UI.Zoom, "input_scale", cfg.UI.InputScale)
	_, err = p.Run()
	return err
}

// startWatcher reloads the panel whenever the feed file changes. A watcher
// that cannot start only costs live reload.
func startWatcher(p *tea.Program, cfg *config.Config, logger *log.Logger) (stop func()) {
	events, stop, err := watcher.Watch(cfg.Feed, cfg.WatchDebounce)
	if err != nil {
		logger.Warn("feed watcher unavailable", "feed", cfg.Feed, "err", err)
		return func() {}
	}
	go func() {
		for range events {
			logger.Debug("feed changed", "feed", cfg.Feed)
			p.Send(common.RefreshMsg{Stale: true})
		}
	}()
	return stop
}

// buildVersionCmd creates the `modpanel version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "modpanel %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `modpanel completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for modpanel.

Examples:
  # Bash (add to ~/.bashrc)
  modpanel completion bash > /etc/bash_completion.d/modpanel

  # Zsh (add to ~/.zshrc before compinit)
  modpanel completion zsh > "${fpath[1]}/_modpanel"

  # Fish
  modpanel completion fish > ~/.config/fish/completions/modpanel.fish

  # PowerShell
  modpanel completion powershell > modpanel.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}

// buildWindowCmd creates `modpanel window`, which prints the row window the
// virtualizer would materialize for the given geometry.
func buildWindowCmd() *cobra.Command {
	var (
		in         virtual.WindowInput
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Compute the rendered row window for a list geometry",
		Long: `Compute the half-open row range [start, end) the virtualizer renders.

Example:
  modpanel window --total 5000 --scroll-top 12000 --row-height 24 --client-height 600`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Total < 0 {
				return errors.New("--total must not be negative")
			}
			return printWindow(cmd.OutOrStdout(), in, virtual.ComputeWindow(in), jsonOutput)
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.Total, "total", 0, "Number of rows in the list")
	f.Float64Var(&in.ScrollTop, "scroll-top", 0, "Scroll offset in pixels")
	f.Float64Var(&in.ContainerTop, "container-top", 0, "Offset of the list body inside the scroll container")
	f.Float64Var(&in.RowHeight, "row-height", virtual.DefaultBaseRowHeight, "Row height in pixels")
	f.Float64Var(&in.ClientHeight, "client-height", 600, "Visible height of the container in pixels")
	f.IntVar(&in.Overscan, "overscan", virtual.DefaultOverscan, "Extra rows rendered above and below")
	f.IntVar(&in.MinRows, "min-rows", virtual.DefaultMinRows, "Lists this short are rendered whole")
	f.BoolVar(&jsonOutput, "json", false, "Output the window as JSON")

	return cmd
}

func printWindow(out io.Writer, in virtual.WindowInput, w virtual.Window, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]int{"start": w.Start, "end": w.End, "rows": w.Len(), "total": in.Total})
	}
	_, err := fmt.Fprintf(out, "rows [%d, %d) of %d (%d rendered)\n", w.Start, w.End, in.Total, w.Len())
	return err
}
