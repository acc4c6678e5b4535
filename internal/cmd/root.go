// Package cmd wires the CLI: the root command performs the launch, and
// validate checks a configuration document without starting anything.
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/stagehand/internal/appconfig"
	"github.com/harrison/stagehand/internal/config"
	"github.com/harrison/stagehand/internal/launcher"
	"github.com/harrison/stagehand/internal/logger"
	"github.com/harrison/stagehand/internal/osapi"
	"github.com/harrison/stagehand/internal/pkgpath"
	"github.com/harrison/stagehand/internal/reporter"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ExitCodeError carries a nonzero process exit code out of a command.
// The launch error itself has already been reported to the user by the
// orchestrator; main only needs the code.
type ExitCodeError struct {
	code int
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("launch failed with code %d", e.code)
}

// ExitCode returns the process exit code to use.
func (e *ExitCodeError) ExitCode() int {
	return e.code
}

// NewRootCommand creates and returns the root cobra command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stagehand [flags] [-- application args...]",
		Short: "Launcher for packaged applications",
		Long: `Stagehand starts a packaged application the way its config.json
describes: an optional PowerShell start script, an optional background
monitor process, the main executable, and an optional end script.

Arguments after -- are appended to the application's command line.

The launch configuration is read from config.json in the package root
(overridable with --config-file). Launcher settings come from
.stagehand/config.yaml under the package root; flags override them.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		RunE:          runLaunch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().String("config-file", "", "Path to the launch configuration (default: <package root>/config.json)")
	cmd.Flags().String("app-id", "", "Application id to launch (default: first entry)")
	cmd.Flags().String("show", "normal", "Window show mode: normal, hidden, minimized, maximized")
	cmd.Flags().String("log-level", "", "Debug log verbosity (trace, debug, info, warn, error)")
	cmd.Flags().String("log-dir", "", "Directory for debug logs")
	cmd.Flags().Bool("console", false, "Report errors to stderr instead of a dialog")

	cmd.AddCommand(NewValidateCommand())

	return cmd
}

// runLaunch implements the launch flow: resolve the package root, load
// settings and the configuration document, then hand off to the
// orchestrator. The orchestrator's exit code travels back to main as an
// ExitCodeError.
func runLaunch(cmd *cobra.Command, args []string) error {
	packageRoot, err := pkgpath.Resolve()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(packageRoot)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var logLevelPtr, logDirPtr *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDirPtr = &v
	}
	var consolePtr *bool
	if cmd.Flags().Changed("console") {
		v, _ := cmd.Flags().GetBool("console")
		consolePtr = &v
	}
	cfg.MergeWithFlags(logLevelPtr, logDirPtr, consolePtr)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config-file")
	if configFile == "" {
		configFile = filepath.Join(packageRoot, appconfig.FileName)
	}
	doc, err := appconfig.Load(configFile)
	if err != nil {
		return err
	}

	showStr, _ := cmd.Flags().GetString("show")
	show, err := parseShowMode(showStr)
	if err != nil {
		return err
	}

	logDir := cfg.LogDir
	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(packageRoot, logDir)
	}
	log, err := logger.New(logDir, cfg.LogLevel)
	if err != nil {
		// A broken log directory must not keep the application from
		// starting.
		log = logger.Nop()
	}
	defer log.Close()

	appID, _ := cmd.Flags().GetString("app-id")
	api := osapi.New()

	orch := launcher.NewOrchestrator(api, api, reporter.New(cfg.ConsoleErrors), launcher.Options{
		Shell:       cfg.PowerShellExe,
		IdleWait:    cfg.ElevationIdleWait,
		SettleDelay: cfg.ElevationSettleDelay,
	}, log)

	code := orch.Run(launcher.LaunchContext{
		Doc:         doc,
		AppID:       appID,
		PackageRoot: packageRoot,
		Args:        strings.Join(args, " "),
		Show:        show,
	})
	if code != 0 {
		return &ExitCodeError{code: code}
	}
	return nil
}

func parseShowMode(s string) (osapi.ShowMode, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return osapi.ShowNormal, nil
	case "hidden":
		return osapi.ShowHidden, nil
	case "minimized":
		return osapi.ShowMinimized, nil
	case "maximized":
		return osapi.ShowMaximized, nil
	default:
		return 0, fmt.Errorf("invalid show mode %q, must be one of: normal, hidden, minimized, maximized", s)
	}
}
