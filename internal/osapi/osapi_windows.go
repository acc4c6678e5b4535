//go:build windows

package osapi

import (
	"errors"
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// Extended attribute constants for the desktop app policy. Not exported
// by x/sys/windows, so defined here with their SDK values.
const (
	procThreadAttributeDesktopAppPolicy = 0x20012
	desktopAppBreakawayDisableTree      = 0x02
)

// Shell-execute mask flags.
const (
	seeMaskNoCloseProcess = 0x00000040
)

// genFailure is ERROR_GEN_FAILURE, used when an OS error carries no
// recognizable code.
const genFailure uint32 = 31

var (
	modshell32 = windows.NewLazySystemDLL("shell32.dll")
	moduser32  = windows.NewLazySystemDLL("user32.dll")

	procShellExecuteExW  = modshell32.NewProc("ShellExecuteExW")
	procWaitForInputIdle = moduser32.NewProc("WaitForInputIdle")
)

// shellExecuteInfo mirrors SHELLEXECUTEINFOW.
type shellExecuteInfo struct {
	cbSize        uint32
	mask          uint32
	hwnd          windows.Handle
	verb          *uint16
	file          *uint16
	parameters    *uint16
	directory     *uint16
	show          int32
	instApp       windows.Handle
	idList        uintptr
	class         *uint16
	keyClass      windows.Handle
	hotKey        uint32
	iconOrMonitor windows.Handle
	process       windows.Handle
}

// winAPI implements ProcessAPI and RegistryAPI on Windows.
type winAPI struct{}

// New returns the native Windows implementation.
func New() interface {
	ProcessAPI
	RegistryAPI
} {
	return &winAPI{}
}

func errCode(err error) uint32 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return genFailure
}

type procAttributes struct {
	list   *windows.ProcThreadAttributeListContainer
	policy uint32
}

func (a *procAttributes) DisableBreakaway() uint32 {
	a.policy = desktopAppBreakawayDisableTree
	err := a.list.Update(
		procThreadAttributeDesktopAppPolicy,
		unsafe.Pointer(&a.policy),
		unsafe.Sizeof(a.policy),
	)
	if err != nil {
		return errCode(err)
	}
	return StatusOK
}

func (a *procAttributes) Close() {
	if a.list != nil {
		a.list.Delete()
		a.list = nil
	}
}

func (w *winAPI) NewProcAttributes() (ProcAttributes, uint32) {
	list, err := windows.NewProcThreadAttributeList(1)
	if err != nil {
		return nil, errCode(err)
	}
	return &procAttributes{list: list}, StatusOK
}

func (w *winAPI) CreateProcess(opts CreateOptions) (Handle, uint32) {
	var appPtr *uint16
	if opts.ApplicationPath != "" {
		p, err := windows.UTF16PtrFromString(opts.ApplicationPath)
		if err != nil {
			return 0, uint32(windows.ERROR_INVALID_PARAMETER)
		}
		appPtr = p
	}

	// CreateProcessW may modify the command-line buffer, so it has to be
	// writable.
	cmdBuf, err := windows.UTF16FromString(opts.CommandLine)
	if err != nil {
		return 0, uint32(windows.ERROR_INVALID_PARAMETER)
	}

	var dirPtr *uint16
	if opts.WorkingDir != "" {
		p, err := windows.UTF16PtrFromString(opts.WorkingDir)
		if err != nil {
			return 0, uint32(windows.ERROR_INVALID_PARAMETER)
		}
		dirPtr = p
	}

	si := new(windows.StartupInfoEx)
	si.Cb = uint32(unsafe.Sizeof(*si))
	si.Flags = windows.STARTF_USESHOWWINDOW
	si.ShowWindow = uint16(opts.Show)
	if attrs, ok := opts.Attributes.(*procAttributes); ok && attrs != nil {
		si.ProcThreadAttributeList = attrs.list.List()
	}

	var pi windows.ProcessInformation
	err = windows.CreateProcess(
		appPtr,
		&cmdBuf[0],
		nil, nil,
		opts.InheritHandles,
		windows.EXTENDED_STARTUPINFO_PRESENT,
		nil,
		dirPtr,
		&si.StartupInfo,
		&pi,
	)
	if err != nil {
		return 0, errCode(err)
	}
	windows.CloseHandle(pi.Thread)
	return Handle(pi.Process), StatusOK
}

func (w *winAPI) ShellExecute(opts ShellOptions) (Handle, uint32) {
	toPtr := func(s string) (*uint16, bool) {
		if s == "" {
			return nil, true
		}
		p, err := windows.UTF16PtrFromString(s)
		return p, err == nil
	}

	info := shellExecuteInfo{
		mask: seeMaskNoCloseProcess,
		show: int32(opts.Show),
	}
	info.cbSize = uint32(unsafe.Sizeof(info))

	var ok bool
	if info.verb, ok = toPtr(opts.Verb); !ok {
		return 0, uint32(windows.ERROR_INVALID_PARAMETER)
	}
	if info.file, ok = toPtr(opts.File); !ok {
		return 0, uint32(windows.ERROR_INVALID_PARAMETER)
	}
	if info.parameters, ok = toPtr(opts.Parameters); !ok {
		return 0, uint32(windows.ERROR_INVALID_PARAMETER)
	}
	if info.directory, ok = toPtr(opts.Directory); !ok {
		return 0, uint32(windows.ERROR_INVALID_PARAMETER)
	}

	ret, _, callErr := procShellExecuteExW.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 0, errCode(callErr)
	}
	return Handle(info.process), StatusOK
}

func (w *winAPI) WaitForExit(h Handle) uint32 {
	event, err := windows.WaitForSingleObject(windows.Handle(h), windows.INFINITE)
	if err != nil {
		return errCode(err)
	}
	if event != windows.WAIT_OBJECT_0 {
		return genFailure
	}
	return StatusOK
}

func (w *winAPI) WaitForIdle(h Handle, timeout time.Duration) {
	if h == 0 {
		return
	}
	procWaitForInputIdle.Call(uintptr(h), uintptr(timeout.Milliseconds()))
}

func (w *winAPI) CloseHandle(h Handle) {
	if h != 0 {
		windows.CloseHandle(windows.Handle(h))
	}
}

func (w *winAPI) InitComponentRuntime() error {
	// The apartment model ties COM state to this OS thread.
	runtime.LockOSThread()
	err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED|windows.COINIT_DISABLE_OLE1DDE)
	if err != nil {
		return err
	}
	return nil
}

func (w *winAPI) ReadDWord(path, name string) (uint32, uint32) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return 0, errCode(err)
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue(name)
	if err != nil {
		return 0, errCode(err)
	}
	return uint32(value), StatusOK
}
