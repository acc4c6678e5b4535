package launcher

import (
	"path/filepath"
	"time"

	"github.com/harrison/stagehand/internal/appconfig"
	"github.com/harrison/stagehand/internal/osapi"
)

// Default timings for the non-waiting elevated path. An elevation
// prompt relaunches the monitor, so the first process can exit almost
// immediately; the settle delay gives the relaunched instance time to
// come up before the main executable starts.
const (
	DefaultIdleWait    = time.Second
	DefaultSettleDelay = 5 * time.Second
)

// MonitorLauncher starts the auxiliary monitor process, elevated or
// not, optionally blocking until it exits.
type MonitorLauncher struct {
	api         osapi.ProcessAPI
	starter     *Starter
	log         DebugLog
	idleWait    time.Duration
	settleDelay time.Duration
}

// NewMonitorLauncher builds a MonitorLauncher. Zero durations select
// the defaults; log may be nil.
func NewMonitorLauncher(api osapi.ProcessAPI, starter *Starter, idleWait, settleDelay time.Duration, log DebugLog) *MonitorLauncher {
	if idleWait <= 0 {
		idleWait = DefaultIdleWait
	}
	if settleDelay < 0 {
		settleDelay = DefaultSettleDelay
	}
	if log == nil {
		log = nopLog{}
	}
	return &MonitorLauncher{
		api:         api,
		starter:     starter,
		log:         log,
		idleWait:    idleWait,
		settleDelay: settleDelay,
	}
}

// Launch starts the monitor described by the descriptor. Elevation
// needs the shell's "runas" verb because direct process creation cannot
// raise a consent prompt; the two paths stay separate. A failed
// elevation attempt is returned to the caller.
func (m *MonitorLauncher) Launch(monitor appconfig.MonitorDescriptor, packageRoot, workingDir string, show osapi.ShowMode) ErrorInfo {
	quoted := `"` + filepath.Join(packageRoot, monitor.Executable) + `"`
	m.log.LogString("monitor", quoted)

	if monitor.AsAdmin {
		handle, status := m.api.ShellExecute(osapi.ShellOptions{
			Verb:       "runas",
			File:       quoted,
			Parameters: monitor.Arguments,
			Show:       osapi.ShowNormal,
		})
		if status != osapi.StatusOK {
			return NewExeError("error starting monitor using ShellExecuteEx", status, monitor.Executable)
		}

		if monitor.Wait {
			m.api.WaitForExit(handle)
			m.api.CloseHandle(handle)
			return ErrorInfo{}
		}

		m.api.WaitForIdle(handle, m.idleWait)
		// The elevation relaunch can outlive the handle we hold; idle
		// readiness alone is not enough, hence the settle delay.
		time.Sleep(m.settleDelay)
		m.api.CloseHandle(handle)
		return ErrorInfo{}
	}

	req := Request{
		ApplicationPath: filepath.Join(packageRoot, monitor.Executable),
		CommandLine:     quoted + " " + monitor.Arguments,
		WorkingDir:      filepath.Join(packageRoot, workingDir),
	}
	err := m.starter.Start(req, show, false)
	return err.WithExe(monitor.Executable)
}
