package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/portdeck/internal/appearance"
	"github.com/muurk/portdeck/internal/config"
	"github.com/muurk/portdeck/internal/controller"
	"github.com/muurk/portdeck/internal/logging"
	"github.com/muurk/portdeck/internal/prefs"
	"github.com/muurk/portdeck/internal/theme"
	"github.com/muurk/portdeck/internal/ui"
)

func init() {
	modeCmd.AddCommand(modeSetCmd)

	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(watchCmd)
}

// modeCmd shows the stored mode and the effective appearance
var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show the theme mode",
	Long: `Show the stored theme mode and the appearance it resolves to.

In system mode the appearance is read from the host through the configured
source.`,
	Example: `  # Show the current mode
  portdeck mode

  # Resolve against a specific source
  portdeck mode --source gsettings`,
	Args: cobra.NoArgs,
	RunE: runMode,
}

// modeSetCmd stores a new mode
var modeSetCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Set the theme mode",
	Long:      `Store a new theme mode. The dashboard picks it up on next start.`,
	Example:   `  portdeck mode set system`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.ModeLight), string(theme.ModeDark), string(theme.ModeSystem)},
	RunE:      runModeSet,
}

// watchCmd prints every applied appearance until interrupted
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print appearance changes as they happen",
	Long: `Apply the stored theme mode and print the effective appearance, then
keep printing it each time it changes. Only system mode changes on its own;
switch the desktop between light and dark to see it.

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

// session is a bootstrapped theme controller with its collaborators.
type session struct {
	cfg    *config.Config
	source appearance.Source
	ctrl   *controller.Controller
}

// newSession loads the config and builds a controller applying to flag.
// The caller bootstraps and closes it.
func newSession(flag *theme.Flag) (*session, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		// The store reports the same failure at bootstrap and falls back
		// to light; the source settings fall back to defaults here.
		logging.Warn("Config unreadable, using defaults", zap.String("path", path), zap.Error(err))
		cfg = config.NewConfig()
	}

	kind := cfg.Appearance.SourceKind()
	if sourceKind != "" {
		kind = sourceKind
	}
	src, err := appearance.New(kind, appearance.Options{
		PollInterval: cfg.Appearance.Poll(),
		GTKSettings:  cfg.Appearance.GTKSettings,
	})
	if err != nil {
		return nil, err
	}

	logging.Debug("Theme session configured",
		zap.String("config", path),
		zap.String("source", src.Name()),
	)

	return &session{
		cfg:    cfg,
		source: src,
		ctrl:   controller.New(prefs.NewFileStore(path), src, flag),
	}, nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to locate config file: %w", err)
	}
	return path, nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if err := initDashboardLogging(); err != nil {
		return err
	}

	s, err := newSession(theme.Presentation)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := s.ctrl.Bootstrap(ctx); err != nil {
		return err
	}
	defer s.ctrl.Close()

	return ui.Run(ctx, s.ctrl, theme.Presentation)
}

// initDashboardLogging sends logs to a file while the dashboard owns the
// terminal: $PORTDECK_LOG_FILE if set, portdeck.log in the config dir
// otherwise.
func initDashboardLogging() error {
	level := logLevel
	if level == "" {
		level = os.Getenv(logging.LogLevelEnvVar)
	}
	if level == "" {
		return nil
	}

	path := os.Getenv(logging.LogFileEnvVar)
	if path == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		path = filepath.Join(dir, "portdeck.log")
	}
	return logging.InitializeWithOutput(level, path)
}

func runMode(cmd *cobra.Command, args []string) error {
	flag := theme.NewFlag()
	s, err := newSession(flag)
	if err != nil {
		return err
	}
	if err := s.ctrl.Bootstrap(cmd.Context()); err != nil {
		return err
	}
	defer s.ctrl.Close()

	p := ui.NewPrinter(cmd.OutOrStdout(), flag.Appearance())
	p.PrintModeStatus(s.ctrl.Mode(), flag.Appearance(), s.source.Name(), s.ctrl.Subscribed())
	return nil
}

func runModeSet(cmd *cobra.Command, args []string) error {
	mode, err := theme.ParseMode(args[0])
	if err != nil {
		return fmt.Errorf("%w (valid: light, dark, system)", err)
	}

	flag := theme.NewFlag()
	s, err := newSession(flag)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := s.ctrl.Bootstrap(ctx); err != nil {
		return err
	}
	defer s.ctrl.Close()

	setErr := s.ctrl.SetMode(ctx, mode)

	p := ui.NewPrinter(cmd.OutOrStdout(), flag.Appearance())
	if setErr != nil {
		p.PrintError(setErr)
		if errors.Is(setErr, controller.ErrPersistenceWrite) {
			return fmt.Errorf("theme mode %s was not saved", mode)
		}
		return setErr
	}
	p.PrintSuccess("Theme mode set to " + strings.ToLower(mode.Label()))
	p.PrintModeStatus(s.ctrl.Mode(), flag.Appearance(), s.source.Name(), s.ctrl.Subscribed())
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	flag := theme.NewFlag()
	s, err := newSession(flag)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout(), appearance.Light)
	stop := flag.Observe(func(a appearance.Appearance) {
		p.SetAppearance(a)
		p.PrintAppearance(a)
	})
	defer stop()

	ctx := cmd.Context()
	if err := s.ctrl.Bootstrap(ctx); err != nil {
		return err
	}
	defer s.ctrl.Close()

	if s.ctrl.Mode().FollowsHost() && !s.ctrl.Subscribed() {
		p.PrintError(fmt.Errorf("%s source cannot report changes; showing the current value only", s.source.Name()))
	}

	<-ctx.Done()
	if !errors.Is(context.Cause(ctx), context.Canceled) {
		return context.Cause(ctx)
	}
	return nil
}
