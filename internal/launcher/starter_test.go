package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/stagehand/internal/osapi"
)

func TestStarterSuccess(t *testing.T) {
	api := &fakeAPI{}
	starter := NewStarter(api, nil)

	err := starter.Start(Request{
		ApplicationPath: `C:\pkg\game.exe`,
		CommandLine:     `"game.exe" -fullscreen`,
		WorkingDir:      `C:\pkg`,
	}, osapi.ShowNormal, false)

	assert.False(t, err.IsError())
	require.Len(t, api.createCalls, 1)

	call := api.createCalls[0]
	assert.Equal(t, `C:\pkg\game.exe`, call.ApplicationPath)
	assert.Equal(t, `"game.exe" -fullscreen`, call.CommandLine)
	assert.Equal(t, `C:\pkg`, call.WorkingDir)
	assert.True(t, call.InheritHandles)
	assert.Nil(t, call.Attributes)

	// The child is awaited and its handle released.
	require.Len(t, api.waitCalls, 1)
	assert.Equal(t, api.waitCalls, api.closedCalls)
}

func TestStarterCreateFailureSubjectFromApplicationPath(t *testing.T) {
	api := &fakeAPI{createStatus: 2}
	starter := NewStarter(api, nil)

	err := starter.Start(Request{
		ApplicationPath: `C:\pkg\game.exe`,
		CommandLine:     `"game.exe"`,
	}, osapi.ShowNormal, false)

	assert.True(t, err.IsError())
	assert.Equal(t, uint32(2), err.Code())
	assert.Contains(t, err.String(), `C:\pkg\game.exe`)
	assert.Empty(t, api.waitCalls)
}

func TestStarterCreateFailureSubjectFromQuotedCommandLine(t *testing.T) {
	api := &fakeAPI{createStatus: 3}
	starter := NewStarter(api, nil)

	err := starter.Start(Request{
		CommandLine: `"Powershell.exe with spaces" -file start.ps1`,
	}, osapi.ShowNormal, false)

	assert.True(t, err.IsError())
	assert.Contains(t, err.String(), "Powershell.exe with spaces")
	assert.NotContains(t, err.String(), `"`)
}

func TestStarterCreateFailureSubjectFromBareCommandLine(t *testing.T) {
	api := &fakeAPI{createStatus: 3}
	starter := NewStarter(api, nil)

	err := starter.Start(Request{
		CommandLine: `Powershell.exe -file start.ps1`,
	}, osapi.ShowNormal, false)

	assert.True(t, err.IsError())
	assert.Contains(t, err.String(), "Powershell.exe")
	assert.NotContains(t, err.String(), "-file")
}

func TestStarterWaitFailure(t *testing.T) {
	api := &fakeAPI{waitStatus: 6}
	starter := NewStarter(api, nil)

	err := starter.Start(Request{CommandLine: `"game.exe"`}, osapi.ShowNormal, false)

	assert.True(t, err.IsError())
	assert.Equal(t, uint32(6), err.Code())
	assert.Contains(t, err.String(), "Running process failed.")
}

func TestStarterVirtualEnvironmentSetsAttributes(t *testing.T) {
	api := &fakeAPI{}
	starter := NewStarter(api, nil)

	err := starter.Start(Request{CommandLine: `"setup.exe"`}, osapi.ShowNormal, true)

	assert.False(t, err.IsError())
	require.Len(t, api.attrs, 1)
	assert.True(t, api.attrs[0].updated)
	assert.True(t, api.attrs[0].closed)
	require.Len(t, api.createCalls, 1)
	assert.NotNil(t, api.createCalls[0].Attributes)
}

func TestStarterVirtualEnvironmentInitFailureAbortsLaunch(t *testing.T) {
	api := &fakeAPI{attrStatus: 8}
	starter := NewStarter(api, nil)

	err := starter.Start(Request{CommandLine: `"setup.exe"`}, osapi.ShowNormal, true)

	assert.True(t, err.IsError())
	assert.Equal(t, uint32(8), err.Code())
	assert.Contains(t, err.String(), "proc thread attribute list")
	assert.Empty(t, api.createCalls, "process must not be created with uninitialized attributes")
}

func TestStarterVirtualEnvironmentUpdateFailureAbortsLaunch(t *testing.T) {
	api := &fakeAPI{updateStatus: 87}
	starter := NewStarter(api, nil)

	err := starter.Start(Request{CommandLine: `"setup.exe"`}, osapi.ShowNormal, true)

	assert.True(t, err.IsError())
	assert.Equal(t, uint32(87), err.Code())
	assert.Empty(t, api.createCalls)
}

func TestStarterNoVirtualEnvironmentSkipsAttributes(t *testing.T) {
	api := &fakeAPI{}
	starter := NewStarter(api, nil)

	starter.Start(Request{CommandLine: `"game.exe"`}, osapi.ShowNormal, false)

	assert.Empty(t, api.attrs)
}

func TestStarterShellLaunch(t *testing.T) {
	api := &fakeAPI{}
	starter := NewStarter(api, nil)

	err := starter.StartWithShell(`C:\pkg\installer.msi`, "/quiet", `C:\pkg`, osapi.ShowNormal)

	assert.False(t, err.IsError())
	require.Len(t, api.shellCalls, 1)

	call := api.shellCalls[0]
	assert.Equal(t, "", call.Verb)
	assert.Equal(t, `C:\pkg\installer.msi`, call.File)
	assert.Equal(t, "/quiet", call.Parameters)
	assert.Equal(t, `C:\pkg`, call.Directory)
	assert.Empty(t, api.waitCalls, "shell launch does not wait for the target")
}

func TestStarterShellLaunchFailure(t *testing.T) {
	api := &fakeAPI{shellStatus: 5}
	starter := NewStarter(api, nil)

	err := starter.StartWithShell(`C:\pkg\doc.pdf`, "", "", osapi.ShowNormal)

	assert.True(t, err.IsError())
	assert.Equal(t, uint32(5), err.Code())
}

func TestCommandLineSubject(t *testing.T) {
	tests := []struct {
		name        string
		commandLine string
		want        string
	}{
		{"quoted", `"C:\Program Files\app.exe" -v`, `C:\Program Files\app.exe`},
		{"quoted no args", `"app.exe"`, "app.exe"},
		{"unquoted", "app.exe -v", "app.exe"},
		{"unquoted no args", "app.exe", "app.exe"},
		{"unterminated quote", `"app.exe -v`, "app.exe -v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commandLineSubject(tt.commandLine))
		})
	}
}
