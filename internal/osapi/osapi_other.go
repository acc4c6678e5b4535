//go:build !windows

package osapi

import "time"

// stubAPI is the non-Windows placeholder. Every process primitive
// reports StatusNotSupported so the launcher surfaces a clear error
// instead of silently doing nothing. The core packages and their tests
// never touch this; they run against fakes.
type stubAPI struct{}

// New returns the stub implementation for platforms without the native
// primitives.
func New() interface {
	ProcessAPI
	RegistryAPI
} {
	return &stubAPI{}
}

func (s *stubAPI) NewProcAttributes() (ProcAttributes, uint32) {
	return nil, StatusNotSupported
}

func (s *stubAPI) CreateProcess(opts CreateOptions) (Handle, uint32) {
	return 0, StatusNotSupported
}

func (s *stubAPI) ShellExecute(opts ShellOptions) (Handle, uint32) {
	return 0, StatusNotSupported
}

func (s *stubAPI) WaitForExit(h Handle) uint32 {
	return StatusNotSupported
}

func (s *stubAPI) WaitForIdle(h Handle, timeout time.Duration) {}

func (s *stubAPI) CloseHandle(h Handle) {}

func (s *stubAPI) InitComponentRuntime() error {
	return nil
}

func (s *stubAPI) ReadDWord(path, name string) (uint32, uint32) {
	return 0, StatusNotSupported
}
