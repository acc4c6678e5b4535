// Package launcher implements the launch sequence for a packaged
// application: optional start script, optional background monitor, the
// main executable (direct or shell-launched), and an optional end
// script. Failures flow between the stages as ErrorInfo values and end
// up as the process exit code.
package launcher

// Well-known error codes carried by ErrorInfo. Values match the Win32
// codes the launcher historically exited with, so packaging tooling
// that inspects exit codes keeps working.
const (
	// CodeFileNotFound is ERROR_FILE_NOT_FOUND, returned when a
	// configured script path does not resolve to an existing file.
	CodeFileNotFound uint32 = 2

	// CodeNotFound is ERROR_NOT_FOUND, returned when no application in
	// the configuration matches the requested identity.
	CodeNotFound uint32 = 1168

	// CodeUnhandled is ERROR_UNHANDLED_EXCEPTION, the catch-all code for
	// failures the stages do not model.
	CodeUnhandled uint32 = 574

	// CodeAppNotRegistered is the fixed sentinel reported when a script
	// is configured but PowerShell is not installed.
	CodeAppNotRegistered uint32 = 0x80073D17
)

// ErrorInfo is the error value threaded through the launch stages. The
// zero value means "no error" and is what successful stages return.
// A real error carries a message, a platform error code, and optionally
// the name of the program that failed.
type ErrorInfo struct {
	message string
	code    uint32
	exe     string
}

// NewError builds an ErrorInfo from a message and a platform code.
func NewError(message string, code uint32) ErrorInfo {
	return ErrorInfo{message: message, code: code}
}

// NewExeError builds an ErrorInfo that already names the failed program.
func NewExeError(message string, code uint32, exe string) ErrorInfo {
	return ErrorInfo{message: message, code: code, exe: exe}
}

// IsError reports whether e describes a failure. The zero value is the
// success sentinel and reports false even after WithExe.
func (e ErrorInfo) IsError() bool {
	return e.message != "" || e.code != 0
}

// WithExe returns a copy of e with the subject set to name. Calling it
// repeatedly keeps the original message and code; the last subject wins.
func (e ErrorInfo) WithExe(name string) ErrorInfo {
	e.exe = name
	return e
}

// Code returns the platform error code, zero for the success sentinel.
func (e ErrorInfo) Code() uint32 {
	return e.code
}

// Message returns the bare message without the subject.
func (e ErrorInfo) Message() string {
	return e.message
}

// Exe returns the subject program name, if one was attached.
func (e ErrorInfo) Exe() string {
	return e.exe
}

// String renders the message followed by the subject, suitable for the
// user-facing report.
func (e ErrorInfo) String() string {
	if e.exe == "" {
		return e.message
	}
	return e.message + " " + e.exe
}
