// Portdeck is a terminal dashboard for the ports in use on a development
// machine.
//
// Its appearance follows the user's theme preference: light, dark, or
// system, in which case it tracks the desktop's light/dark setting while
// running.
//
// Usage:
//
//	portdeck [command] [flags]
//
// Running without arguments launches the interactive dashboard.
// See 'portdeck --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/portdeck/internal/logging"
	"github.com/muurk/portdeck/internal/version"
)

// Global flags
var (
	configPath string
	logLevel   string
	sourceKind string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "portdeck",
	Short: "Terminal dashboard for local ports",
	Long: `Portdeck shows the ports in use on this machine with their process,
status and address, and lets you filter and search them.

The theme can be light, dark, or follow the system setting. Change it from
the dashboard settings screen (press t) or with 'portdeck mode set'.

If no command is specified, the dashboard launches.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
	RunE:              runDashboard,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: platform config dir, or $PORTDECK_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $PORTDECK_LOG_LEVEL, silent if unset)")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", "Appearance source: auto, gsettings, command, gtk-settings, terminal, env (default: from config)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("portdeck %s\n", version.Full())
	},
}

// initLogging initializes logging from --log-level or the environment
// (silent by default). The dashboard re-initializes to a file because it
// owns the terminal.
func initLogging(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	logging.Debug("Starting portdeck")
	return nil
}
