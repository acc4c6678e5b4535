// Package osapi exposes the operating-system primitives the launcher
// depends on: process creation, shell launching, waits, registry reads
// and the component runtime. The launcher core only talks to these
// interfaces; the Windows implementation lives behind a build tag so
// the core and its tests build on every platform.
package osapi

import "time"

// ShowMode is the window-show hint handed to the OS when a child
// process is created. Values match the Win32 SW_* constants.
type ShowMode int32

const (
	// ShowHidden hides the window of the launched process.
	ShowHidden ShowMode = 0
	// ShowNormal activates and displays the window.
	ShowNormal ShowMode = 1
	// ShowMinimized starts the process minimized.
	ShowMinimized ShowMode = 2
	// ShowMaximized starts the process maximized.
	ShowMaximized ShowMode = 3
)

// Handle identifies a running child process.
type Handle uintptr

// Status codes returned by the primitives. Zero always means success;
// nonzero values are platform error codes.
const (
	// StatusOK reports a successful operation.
	StatusOK uint32 = 0
	// StatusNotSupported is returned by the stub implementation on
	// platforms without the native primitives (ERROR_CALL_NOT_IMPLEMENTED).
	StatusNotSupported uint32 = 120
)

// CreateOptions describes one direct process-creation attempt.
type CreateOptions struct {
	// ApplicationPath is the executable to run. When empty the OS
	// derives the executable from the first token of CommandLine.
	ApplicationPath string

	// CommandLine is the full command line, including the program name.
	CommandLine string

	// WorkingDir is the working directory for the child. Empty means
	// inherit the parent's.
	WorkingDir string

	// Show is the window-show hint for the child.
	Show ShowMode

	// InheritHandles passes the parent's inheritable handles down.
	InheritHandles bool

	// Attributes optionally carries an extended attribute list built
	// via NewProcAttributes. Nil means no extended attributes.
	Attributes ProcAttributes
}

// ShellOptions describes a shell-launch attempt. Shell launching goes
// through file-type associations, so non-executable targets (.bat,
// .msi, documents) resolve to their registered handler.
type ShellOptions struct {
	// Verb is the shell verb, e.g. "runas" for elevation. Empty uses
	// the default verb (open).
	Verb string

	// File is the target file or program.
	File string

	// Parameters is the argument string passed to the target.
	Parameters string

	// Directory is the working directory. Empty inherits the parent's.
	Directory string

	// Show is the window-show hint.
	Show ShowMode
}

// ProcAttributes is an extended process-creation attribute list. It is
// built empty and updated with individual policies before being passed
// to CreateProcess via CreateOptions.
type ProcAttributes interface {
	// DisableBreakaway requests the desktop app policy that prevents
	// the child from breaking away from its restricted process tree.
	// Returns StatusOK or a platform error code.
	DisableBreakaway() uint32

	// Close releases the attribute list.
	Close()
}

// ProcessAPI is the process-creation and waiting surface of the OS.
type ProcessAPI interface {
	// NewProcAttributes allocates an extended attribute list with room
	// for a single attribute.
	NewProcAttributes() (ProcAttributes, uint32)

	// CreateProcess starts a child process. On success the returned
	// status is StatusOK and the handle must eventually be released
	// with CloseHandle.
	CreateProcess(opts CreateOptions) (Handle, uint32)

	// ShellExecute launches a target through the OS shell. The handle
	// may be zero on platforms where the shell does not hand one back.
	ShellExecute(opts ShellOptions) (Handle, uint32)

	// WaitForExit blocks until the process exits. Returns StatusOK when
	// the wait completed via normal signaling, else the error code.
	WaitForExit(h Handle) uint32

	// WaitForIdle blocks until the process is waiting for input with no
	// pending work, or until the timeout elapses. Best effort.
	WaitForIdle(h Handle, timeout time.Duration)

	// CloseHandle releases a process handle.
	CloseHandle(h Handle)

	// InitComponentRuntime initializes the process-wide component
	// runtime in the single-threaded apartment model. Safe to call when
	// already initialized. There is no teardown; process exit reclaims it.
	InitComponentRuntime() error
}

// RegistryAPI reads values from the system registry.
type RegistryAPI interface {
	// ReadDWord reads a DWORD value under a key path rooted at the
	// local-machine hive. Returns the value and StatusOK, or zero and
	// the platform error code.
	ReadDWord(path, name string) (uint32, uint32)
}
