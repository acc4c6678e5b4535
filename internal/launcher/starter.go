package launcher

import (
	"fmt"
	"strings"

	"github.com/harrison/stagehand/internal/osapi"
)

// DebugLog is the write-only debug sink the stages trace to.
type DebugLog interface {
	Logf(format string, args ...interface{})
	LogString(name, value string)
}

// nopLog backs a nil logger so callers never have to check.
type nopLog struct{}

func (nopLog) Logf(string, ...interface{}) {}
func (nopLog) LogString(string, string)    {}

// Request describes one process-start attempt. A fresh Request is built
// per launch; it is never reused.
type Request struct {
	// ApplicationPath is the absolute executable path. Empty means the
	// OS infers the executable from the first token of CommandLine.
	ApplicationPath string

	// CommandLine is the full command line including the program token.
	CommandLine string

	// WorkingDir is the working directory for the child process.
	WorkingDir string
}

// Starter creates child processes through the OS collaborator and waits
// for them to exit.
type Starter struct {
	api osapi.ProcessAPI
	log DebugLog
}

// NewStarter builds a Starter. log may be nil.
func NewStarter(api osapi.ProcessAPI, log DebugLog) *Starter {
	if log == nil {
		log = nopLog{}
	}
	return &Starter{api: api, log: log}
}

// Start creates the process described by req and blocks until it exits.
// With virtualEnv set, the child is created with the desktop app policy
// that disables breakaway from its restricted process tree. Attribute
// setup failures abort the attempt rather than launching with
// half-initialized attribute state.
func (s *Starter) Start(req Request, show osapi.ShowMode, virtualEnv bool) ErrorInfo {
	s.log.LogString("starting", req.CommandLine)

	opts := osapi.CreateOptions{
		ApplicationPath: req.ApplicationPath,
		CommandLine:     req.CommandLine,
		WorkingDir:      req.WorkingDir,
		Show:            show,
		InheritHandles:  true,
	}

	if virtualEnv {
		attrs, status := s.api.NewProcAttributes()
		if status != osapi.StatusOK {
			return NewError("Could not initialize the proc thread attribute list.", status)
		}
		defer attrs.Close()

		if status := attrs.DisableBreakaway(); status != osapi.StatusOK {
			return NewError("Could not update proc thread attribute.", status)
		}
		opts.Attributes = attrs
	}

	handle, status := s.api.CreateProcess(opts)
	if status != osapi.StatusOK {
		subject := req.ApplicationPath
		if subject == "" {
			subject = commandLineSubject(req.CommandLine)
		}
		return NewError(fmt.Sprintf("ERROR: Failed to create a process for %s ", subject), status)
	}
	defer s.api.CloseHandle(handle)

	if status := s.api.WaitForExit(handle); status != osapi.StatusOK {
		return NewError("Running process failed.", status)
	}
	return ErrorInfo{}
}

// StartWithShell launches a target through the OS shell so that
// file-type associations pick the handler. Unlike Start it does not
// wait for the target to exit.
func (s *Starter) StartWithShell(file, parameters, directory string, show osapi.ShowMode) ErrorInfo {
	s.log.Logf("shell launch: %s %s", file, parameters)

	handle, status := s.api.ShellExecute(osapi.ShellOptions{
		File:       file,
		Parameters: parameters,
		Directory:  directory,
		Show:       show,
	})
	if status != osapi.StatusOK {
		return NewError("ERROR: Failed to create shell process", status)
	}
	s.api.CloseHandle(handle)
	return ErrorInfo{}
}

// commandLineSubject extracts the program name from a command line for
// error reporting: the content between the first pair of double quotes
// when the line starts with one, otherwise everything up to the first
// space.
func commandLineSubject(commandLine string) string {
	if strings.HasPrefix(commandLine, `"`) {
		rest := commandLine[1:]
		if end := strings.Index(rest, `"`); end >= 0 {
			return rest[:end]
		}
		return rest
	}
	if end := strings.Index(commandLine, " "); end >= 0 {
		return commandLine[:end]
	}
	return commandLine
}
