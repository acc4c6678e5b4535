// Package appconfig reads the launch configuration document
// (config.json) and exposes typed, absent-aware access to the matched
// application entry. The launcher core only consumes the lookup
// surface; it never parses JSON itself.
package appconfig

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// FileName is the configuration document the launcher looks for in the
// package root.
const FileName = "config.json"

// Document is a parsed configuration file.
type Document struct {
	root gjson.Result
}

// Load reads and parses the configuration document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch configuration: %w", err)
	}
	return Parse(data)
}

// Parse parses a configuration document from raw bytes.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("launch configuration is not valid JSON")
	}
	return &Document{root: gjson.ParseBytes(data)}, nil
}

// Applications returns every application entry in document order.
func (d *Document) Applications() []LaunchConfig {
	var apps []LaunchConfig
	d.root.Get("applications").ForEach(func(_, value gjson.Result) bool {
		apps = append(apps, LaunchConfig{obj: value})
		return true
	})
	return apps
}

// FindApplication returns the entry whose id matches, or the first
// entry when id is empty. The second return is false when nothing
// matches.
func (d *Document) FindApplication(id string) (LaunchConfig, bool) {
	apps := d.Applications()
	if len(apps) == 0 {
		return LaunchConfig{}, false
	}
	if id == "" {
		return apps[0], true
	}
	for _, app := range apps {
		if app.ID() == id {
			return app, true
		}
	}
	return LaunchConfig{}, false
}

// LaunchConfig is a read-only view over one application entry.
type LaunchConfig struct {
	obj gjson.Result
}

// ID returns the application identity, empty when absent.
func (c LaunchConfig) ID() string {
	return c.obj.Get("id").String()
}

// Get returns a required string field, failing when it is absent.
func (c LaunchConfig) Get(key string) (string, error) {
	v := c.obj.Get(key)
	if !v.Exists() {
		return "", fmt.Errorf("required configuration key %q is missing", key)
	}
	return v.String(), nil
}

// TryGetString returns an optional string field and whether it was
// present.
func (c LaunchConfig) TryGetString(key string) (string, bool) {
	v := c.obj.Get(key)
	if !v.Exists() {
		return "", false
	}
	return v.String(), true
}

// TryGetBool returns an optional boolean field and whether it was
// present.
func (c LaunchConfig) TryGetBool(key string) (bool, bool) {
	v := c.obj.Get(key)
	if !v.Exists() {
		return false, false
	}
	return v.Bool(), true
}

// Executable returns the required executable field.
func (c LaunchConfig) Executable() (string, error) {
	return c.Get("executable")
}

// Arguments returns the configured argument string, empty when absent.
func (c LaunchConfig) Arguments() string {
	s, _ := c.TryGetString("arguments")
	return s
}

// WorkingDirectory returns the configured working directory relative to
// the package root, empty when absent.
func (c LaunchConfig) WorkingDirectory() string {
	s, _ := c.TryGetString("workingDirectory")
	return s
}

// ScriptDescriptor describes one PowerShell script hook. Immutable once
// obtained.
type ScriptDescriptor struct {
	// Path is the script path relative to the working directory.
	Path string

	// Arguments is the optional argument string appended to the
	// interpreter command line.
	Arguments string

	// RunInVirtualEnvironment launches the interpreter under the
	// breakaway-disable process policy. Defaults to false.
	RunInVirtualEnvironment bool
}

// MonitorDescriptor describes the auxiliary monitor process. Immutable
// once obtained.
type MonitorDescriptor struct {
	// Executable is the monitor path relative to the package root.
	Executable string

	// Arguments is the argument string passed to the monitor.
	Arguments string

	// AsAdmin launches the monitor elevated. Defaults to false.
	AsAdmin bool

	// Wait blocks the launch sequence until the monitor exits.
	// Defaults to false.
	Wait bool
}

// StartScript returns the pre-launch script descriptor, if configured.
func (c LaunchConfig) StartScript() (ScriptDescriptor, bool) {
	return c.script("startScript")
}

// EndScript returns the post-launch script descriptor, if configured.
func (c LaunchConfig) EndScript() (ScriptDescriptor, bool) {
	return c.script("endScript")
}

func (c LaunchConfig) script(key string) (ScriptDescriptor, bool) {
	obj := c.obj.Get(key)
	if !obj.Exists() {
		return ScriptDescriptor{}, false
	}
	return ScriptDescriptor{
		Path:                    obj.Get("scriptPath").String(),
		Arguments:               obj.Get("scriptArguments").String(),
		RunInVirtualEnvironment: obj.Get("runInVirtualEnvironment").Bool(),
	}, true
}

// Monitor returns the monitor descriptor, if configured.
func (c LaunchConfig) Monitor() (MonitorDescriptor, bool) {
	obj := c.obj.Get("monitor")
	if !obj.Exists() {
		return MonitorDescriptor{}, false
	}
	return MonitorDescriptor{
		Executable: obj.Get("executable").String(),
		Arguments:  obj.Get("arguments").String(),
		AsAdmin:    obj.Get("asadmin").Bool(),
		Wait:       obj.Get("wait").Bool(),
	}, true
}
