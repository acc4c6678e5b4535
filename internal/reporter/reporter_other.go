//go:build !windows

package reporter

func platformDefault() Reporter {
	return NewConsole()
}
