package main

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/gpu"
	"github.com/hexaflex/tricolor/scene"
)

// Process exit codes.
const (
	exitOK = iota
	exitUsage
	exitWindow
	exitShaderRead
	exitShaderCompile
	exitProgramLink
	exitSubsystem
)

// Errors raised by the application itself.
var (
	errWindow    = errors.New("window creation failed")
	errSubsystem = errors.New("subsystem initialization failed")
)

// exitCode maps err to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errWindow):
		return exitWindow
	case errors.Is(err, scene.ErrShaderSource):
		return exitShaderRead
	case errors.Is(err, gpu.ErrCompile):
		return exitShaderCompile
	case errors.Is(err, gpu.ErrLink):
		return exitProgramLink
	default:
		return exitSubsystem
	}
}
