package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorInfoZeroValueIsSuccess(t *testing.T) {
	var err ErrorInfo

	assert.False(t, err.IsError())
	assert.Equal(t, uint32(0), err.Code())
	assert.Equal(t, "", err.String())
}

func TestErrorInfoZeroValueStaysSuccessAfterWithExe(t *testing.T) {
	var err ErrorInfo
	err = err.WithExe("game.exe")

	assert.False(t, err.IsError())
}

func TestErrorInfoConstructedIsError(t *testing.T) {
	err := NewError("Running process failed.", 5)

	assert.True(t, err.IsError())
	assert.Equal(t, uint32(5), err.Code())
	assert.Equal(t, "Running process failed.", err.String())
}

func TestErrorInfoWithExeRendersMessageAndSubject(t *testing.T) {
	err := NewError("Running process failed.", 5).WithExe("game.exe")

	assert.True(t, err.IsError())
	assert.Contains(t, err.String(), "Running process failed.")
	assert.Contains(t, err.String(), "game.exe")
}

func TestErrorInfoWithExeLastSubjectWins(t *testing.T) {
	err := NewError("Running process failed.", 5)
	err = err.WithExe("first.exe")
	err = err.WithExe("second.exe")
	err = err.WithExe("third.exe")

	assert.Contains(t, err.String(), "Running process failed.")
	assert.Contains(t, err.String(), "third.exe")
	assert.NotContains(t, err.String(), "first.exe")
	assert.Equal(t, uint32(5), err.Code())
}

func TestErrorInfoWithExeKeepsOriginalMessageAndCode(t *testing.T) {
	original := NewError("ERROR: Failed to create a process for vlc.exe ", 2)
	enriched := original.WithExe("vlc.exe")

	assert.Equal(t, original.Message(), enriched.Message())
	assert.Equal(t, original.Code(), enriched.Code())
	assert.Equal(t, "vlc.exe", enriched.Exe())
}

func TestNewExeError(t *testing.T) {
	err := NewExeError("error starting monitor using ShellExecuteEx", 1223, "monitor.exe")

	assert.True(t, err.IsError())
	assert.Equal(t, uint32(1223), err.Code())
	assert.Contains(t, err.String(), "monitor.exe")
}
