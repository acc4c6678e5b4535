//go:build windows

package reporter

import "golang.org/x/sys/windows"

// Dialog reports through a modal message box. Launchers for packaged
// GUI applications usually have no console attached, so stderr would
// vanish.
type Dialog struct {
	title string
}

// NewDialog returns a message-box reporter.
func NewDialog() *Dialog {
	return &Dialog{title: "Application Launcher"}
}

// Report shows the message in an error dialog. Failures to display are
// ignored; there is nowhere left to report them.
func (d *Dialog) Report(message string) {
	text, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return
	}
	caption, err := windows.UTF16PtrFromString(d.title)
	if err != nil {
		return
	}
	windows.MessageBox(0, text, caption, windows.MB_OK|windows.MB_ICONERROR)
}

func platformDefault() Reporter {
	return NewDialog()
}
