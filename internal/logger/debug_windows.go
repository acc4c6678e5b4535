//go:build windows

package logger

import "golang.org/x/sys/windows"

// debugOutput mirrors log lines to the system debugger channel so
// attached tooling sees launch traces without opening the run file.
func debugOutput(message string) {
	p, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return
	}
	windows.OutputDebugString(p)
}
