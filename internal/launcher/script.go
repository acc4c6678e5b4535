package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/stagehand/internal/appconfig"
	"github.com/harrison/stagehand/internal/osapi"
)

// DefaultShell is the script interpreter used when the settings do not
// name one.
const DefaultShell = "Powershell.exe"

// ScriptRunner launches PowerShell script hooks through the Starter.
type ScriptRunner struct {
	starter *Starter
	shell   string
	log     DebugLog
}

// NewScriptRunner builds a ScriptRunner. shell is the interpreter
// executable name; empty selects DefaultShell. log may be nil.
func NewScriptRunner(starter *Starter, shell string, log DebugLog) *ScriptRunner {
	if shell == "" {
		shell = DefaultShell
	}
	if log == nil {
		log = nopLog{}
	}
	return &ScriptRunner{starter: starter, shell: shell, log: log}
}

// Run resolves the script under packageRoot/workingDir, verifies it
// exists, and launches the interpreter on it. A missing script file is
// reported without any process being created. The interpreter command
// line keeps the script path relative; the OS resolves it against the
// working directory.
func (r *ScriptRunner) Run(script appconfig.ScriptDescriptor, packageRoot, workingDir string, show osapi.ShowMode) ErrorInfo {
	commandLine := r.shell + " -file " + script.Path + " "
	if script.Arguments != "" {
		commandLine += script.Arguments
	}

	currentDir := filepath.Join(packageRoot, workingDir)
	resolved := filepath.Join(currentDir, script.Path)
	if _, err := os.Stat(resolved); err != nil {
		return NewError(fmt.Sprintf("The PowerShell file %s can't be found", resolved), CodeFileNotFound)
	}

	r.log.LogString("script", commandLine)
	req := Request{
		CommandLine: commandLine,
		WorkingDir:  currentDir,
	}
	return r.starter.Start(req, show, script.RunInVirtualEnvironment)
}
