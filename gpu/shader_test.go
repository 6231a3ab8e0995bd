package gpu_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/gpu"
	"github.com/hexaflex/tricolor/gpu/gputest"
)

func TestCompileProgram(t *testing.T) {
	dev := gputest.New()

	program, err := gpu.CompileProgram(dev, "vertex", "fragment")
	if err != nil {
		t.Fatal(err)
	}

	if !dev.Programs[program] {
		t.Fatalf("program %d is not live", program)
	}

	if len(dev.Shaders) != 0 {
		t.Fatalf("expected shaders to be deleted; have %d live", len(dev.Shaders))
	}
}

func TestCompileProgramCompileError(t *testing.T) {
	dev := gputest.New()
	dev.FailCompile = func(source string) string {
		if strings.Contains(source, "fragment") {
			return "0:1: syntax error"
		}
		return ""
	}

	program, err := gpu.CompileProgram(dev, "vertex", "fragment")
	if !errors.Is(err, gpu.ErrCompile) {
		t.Fatalf("unexpected error; have %v, want %v", err, gpu.ErrCompile)
	}

	if program != 0 {
		t.Fatalf("expected no program; have %d", program)
	}

	if n := dev.Live(); n != 0 {
		t.Fatalf("expected no live objects; have %d", n)
	}
}

func TestCompileProgramLinkError(t *testing.T) {
	dev := gputest.New()
	dev.FailLink = "error: unresolved symbol"

	_, err := gpu.CompileProgram(dev, "vertex", "fragment")
	if !errors.Is(err, gpu.ErrLink) {
		t.Fatalf("unexpected error; have %v, want %v", err, gpu.ErrLink)
	}

	if n := dev.Live(); n != 0 {
		t.Fatalf("expected no live objects; have %d", n)
	}
}
