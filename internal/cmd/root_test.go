package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/stagehand/internal/osapi"
)

func TestParseShowMode(t *testing.T) {
	tests := []struct {
		input string
		want  osapi.ShowMode
	}{
		{"", osapi.ShowNormal},
		{"normal", osapi.ShowNormal},
		{"Normal", osapi.ShowNormal},
		{"hidden", osapi.ShowHidden},
		{"minimized", osapi.ShowMinimized},
		{"MAXIMIZED", osapi.ShowMaximized},
	}
	for _, tt := range tests {
		got, err := parseShowMode(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseShowModeInvalid(t *testing.T) {
	_, err := parseShowMode("fullscreen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid show mode")
}

func TestExitCodeError(t *testing.T) {
	err := &ExitCodeError{code: 1168}
	assert.Equal(t, 1168, err.ExitCode())
	assert.Contains(t, err.Error(), "1168")
}

func TestRootCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"config-file", "app-id", "show", "log-level", "log-dir", "console"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}

	validate, _, err := cmd.Find([]string{"validate"})
	require.NoError(t, err)
	assert.Equal(t, "validate", validate.Name())
}
