package launcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/stagehand/internal/appconfig"
	"github.com/harrison/stagehand/internal/osapi"
)

// PowerShell availability is detected through the registry rather than
// a PATH probe, matching how the interpreter registers itself.
const (
	powerShellKeyPath      = `SOFTWARE\Microsoft\PowerShell\1`
	powerShellInstallValue = "Install"
)

// Reporter surfaces the final aggregated error to the user. It is
// called at most once per launch.
type Reporter interface {
	Report(message string)
}

type nopReporter struct{}

func (nopReporter) Report(string) {}

// Options carries the tunable launch knobs.
type Options struct {
	// Shell is the script interpreter executable name. Empty selects
	// DefaultShell.
	Shell string

	// IdleWait bounds the post-elevation idle wait for the monitor.
	IdleWait time.Duration

	// SettleDelay is the fixed delay after a non-waiting elevated
	// monitor launch.
	SettleDelay time.Duration
}

// LaunchContext identifies one launch invocation: the configuration
// document, which application to start, where the package lives, and
// the arguments passed through from the launcher's own command line.
type LaunchContext struct {
	Doc         *appconfig.Document
	AppID       string
	PackageRoot string
	Args        string
	Show        osapi.ShowMode
}

// Orchestrator drives the launch sequence: start script, monitor, main
// executable, end script. Each stage short-circuits the rest on error
// except the end script, which always runs but never overrides an
// earlier error.
type Orchestrator struct {
	api      osapi.ProcessAPI
	reg      osapi.RegistryAPI
	reporter Reporter
	log      DebugLog
	shell    string

	starter *Starter
	scripts *ScriptRunner
	monitor *MonitorLauncher
}

// NewOrchestrator wires the stages together. reporter and log may be
// nil.
func NewOrchestrator(api osapi.ProcessAPI, reg osapi.RegistryAPI, reporter Reporter, opts Options, log DebugLog) *Orchestrator {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if log == nil {
		log = nopLog{}
	}
	shell := opts.Shell
	if shell == "" {
		shell = DefaultShell
	}
	starter := NewStarter(api, log)
	return &Orchestrator{
		api:      api,
		reg:      reg,
		reporter: reporter,
		log:      log,
		shell:    shell,
		starter:  starter,
		scripts:  NewScriptRunner(starter, shell, log),
		monitor:  NewMonitorLauncher(api, starter, opts.IdleWait, opts.SettleDelay, log),
	}
}

// Run executes the full launch sequence and returns the process exit
// code: zero on success, the aggregated error code otherwise. Exactly
// one message is reported on failure. No failure, including a panic in
// a collaborator, escapes Run.
func (o *Orchestrator) Run(ctx LaunchContext) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			err := NewError(fmt.Sprintf("unexpected failure during launch: %v", r), CodeUnhandled)
			o.reporter.Report(err.String())
			exitCode = int(err.Code())
		}
	}()

	if err := o.run(ctx); err.IsError() {
		o.reporter.Report(err.String())
		return int(err.Code())
	}
	return 0
}

func (o *Orchestrator) run(ctx LaunchContext) ErrorInfo {
	o.log.Logf("launching application %q from %s", ctx.AppID, ctx.PackageRoot)

	app, ok := ctx.Doc.FindApplication(ctx.AppID)
	if !ok {
		return NewError("Error: could not find a matching application in config.json", CodeNotFound)
	}

	workingDir := app.WorkingDirectory()

	psInstalled, err := checkPowerShellInstalled(o.reg)
	if err.IsError() {
		return err
	}

	if script, ok := app.StartScript(); ok {
		if !psInstalled {
			return NewError("PowerShell is not installed. Please install PowerShell to run launch scripts", CodeAppNotRegistered)
		}
		if err := o.scripts.Run(script, ctx.PackageRoot, workingDir, ctx.Show); err.IsError() {
			return err
		}
	}

	var launchErr ErrorInfo
	if monitor, ok := app.Monitor(); ok {
		// The monitor may use COM; the runtime stays up until process
		// exit.
		if rtErr := o.api.InitComponentRuntime(); rtErr != nil {
			o.log.Logf("component runtime init: %v", rtErr)
		}
		launchErr = o.monitor.Launch(monitor, ctx.PackageRoot, workingDir, ctx.Show)
	}

	// A monitor failure suppresses the main launch but the end script
	// still gets its turn below.
	if !launchErr.IsError() {
		launchErr = o.startApplication(app, ctx, workingDir)
	}

	if script, ok := app.EndScript(); ok {
		endErr := o.scripts.Run(script, ctx.PackageRoot, workingDir, ctx.Show)
		if launchErr.IsError() {
			return launchErr
		}
		if endErr.IsError() {
			return endErr.WithExe(o.shell)
		}
	}

	return launchErr
}

// startApplication builds the main command line and dispatches between
// direct creation (.exe targets) and shell launch (everything else, so
// file-type associations pick the handler).
func (o *Orchestrator) startApplication(app appconfig.LaunchConfig, ctx LaunchContext, workingDir string) ErrorInfo {
	exeName, err := app.Executable()
	if err != nil {
		return NewError(err.Error(), CodeNotFound)
	}

	exePath := filepath.Join(ctx.PackageRoot, exeName)
	exeArgs := app.Arguments()

	// The starter expects the program token quoted.
	commandLine := `"` + filepath.Base(exeName) + `" ` + exeArgs + " " + ctx.Args
	commandLine = strings.TrimRight(commandLine, " ")
	o.log.LogString("application", commandLine)

	if strings.EqualFold(filepath.Ext(exeName), ".exe") {
		req := Request{
			ApplicationPath: exePath,
			CommandLine:     commandLine,
			WorkingDir:      filepath.Join(ctx.PackageRoot, workingDir),
		}
		return o.starter.Start(req, ctx.Show, false).WithExe(exeName)
	}

	var dir string
	if workingDir != "" {
		dir = filepath.Join(ctx.PackageRoot, workingDir)
	}
	return o.starter.StartWithShell(exePath, exeArgs, dir, ctx.Show).WithExe(exeName)
}

func checkPowerShellInstalled(reg osapi.RegistryAPI) (bool, ErrorInfo) {
	value, status := reg.ReadDWord(powerShellKeyPath, powerShellInstallValue)
	if status != osapi.StatusOK {
		return false, NewError("Error with getting the key to see if PowerShell is installed.", status)
	}
	return value == 1, ErrorInfo{}
}
