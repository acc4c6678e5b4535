package launcher

import (
	"strings"
	"time"

	"github.com/harrison/stagehand/internal/osapi"
)

// fakeAttrs records extended-attribute activity.
type fakeAttrs struct {
	updateStatus uint32
	updated      bool
	closed       bool
}

func (a *fakeAttrs) DisableBreakaway() uint32 {
	if a.updateStatus != osapi.StatusOK {
		return a.updateStatus
	}
	a.updated = true
	return osapi.StatusOK
}

func (a *fakeAttrs) Close() {
	a.closed = true
}

type idleCall struct {
	handle  osapi.Handle
	timeout time.Duration
}

// fakeAPI is a recording ProcessAPI implementation. Zero-valued fields
// mean "succeed".
type fakeAPI struct {
	createStatus uint32
	// failWhenContains fails only the CreateProcess calls whose command
	// line contains the substring, with failStatus.
	failWhenContains string
	failStatus       uint32
	shellStatus      uint32
	waitStatus   uint32
	attrStatus   uint32
	updateStatus uint32
	nextHandle   osapi.Handle
	panicOn      string

	createCalls []osapi.CreateOptions
	shellCalls  []osapi.ShellOptions
	waitCalls   []osapi.Handle
	idleCalls   []idleCall
	closedCalls []osapi.Handle
	attrs       []*fakeAttrs
	comInits    int
}

func (f *fakeAPI) handle() osapi.Handle {
	if f.nextHandle == 0 {
		f.nextHandle = 100
	}
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeAPI) NewProcAttributes() (osapi.ProcAttributes, uint32) {
	if f.attrStatus != osapi.StatusOK {
		return nil, f.attrStatus
	}
	attrs := &fakeAttrs{updateStatus: f.updateStatus}
	f.attrs = append(f.attrs, attrs)
	return attrs, osapi.StatusOK
}

func (f *fakeAPI) CreateProcess(opts osapi.CreateOptions) (osapi.Handle, uint32) {
	if f.panicOn == "create" {
		panic("collaborator blew up")
	}
	f.createCalls = append(f.createCalls, opts)
	if f.failWhenContains != "" && strings.Contains(opts.CommandLine, f.failWhenContains) {
		return 0, f.failStatus
	}
	if f.createStatus != osapi.StatusOK {
		return 0, f.createStatus
	}
	return f.handle(), osapi.StatusOK
}

func (f *fakeAPI) ShellExecute(opts osapi.ShellOptions) (osapi.Handle, uint32) {
	f.shellCalls = append(f.shellCalls, opts)
	if f.shellStatus != osapi.StatusOK {
		return 0, f.shellStatus
	}
	return f.handle(), osapi.StatusOK
}

func (f *fakeAPI) WaitForExit(h osapi.Handle) uint32 {
	f.waitCalls = append(f.waitCalls, h)
	return f.waitStatus
}

func (f *fakeAPI) WaitForIdle(h osapi.Handle, timeout time.Duration) {
	f.idleCalls = append(f.idleCalls, idleCall{handle: h, timeout: timeout})
}

func (f *fakeAPI) CloseHandle(h osapi.Handle) {
	f.closedCalls = append(f.closedCalls, h)
}

func (f *fakeAPI) InitComponentRuntime() error {
	f.comInits++
	return nil
}

// fakeRegistry is a recording RegistryAPI implementation.
type fakeRegistry struct {
	value  uint32
	status uint32
	reads  []string
}

func (r *fakeRegistry) ReadDWord(path, name string) (uint32, uint32) {
	r.reads = append(r.reads, path+`\`+name)
	if r.status != osapi.StatusOK {
		return 0, r.status
	}
	return r.value, osapi.StatusOK
}

// fakeReporter records every reported message.
type fakeReporter struct {
	messages []string
}

func (r *fakeReporter) Report(message string) {
	r.messages = append(r.messages, message)
}
