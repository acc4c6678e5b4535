//go:build !windows

package logger

// debugOutput is a no-op where there is no system debugger channel.
func debugOutput(string) {}
