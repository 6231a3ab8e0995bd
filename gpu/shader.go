package gpu

import (
	"log"
	"strings"

	"github.com/pkg/errors"
)

// CompileProgram compiles the given shader sources into a program.
// An empty source skips that stage.
//
// Shader objects are deleted before returning, whether or not the call
// succeeds. On failure the diagnostic is logged and no program is left
// allocated.
func CompileProgram(dev Device, vertex, fragment string) (uint32, error) {
	var vs, fs uint32
	var err error

	if len(vertex) > 0 {
		vs, err = compileShader(dev, vertex, VertexShader)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to compile vertex shader")
		}

		defer dev.DeleteShader(vs)
	}

	if len(fragment) > 0 {
		fs, err = compileShader(dev, fragment, FragmentShader)
		if err != nil {
			return 0, errors.Wrapf(err, "failed to compile fragment shader")
		}

		defer dev.DeleteShader(fs)
	}

	program := dev.CreateProgram()
	if program == 0 {
		return 0, errors.Wrapf(ErrAlloc, "failed to create program")
	}

	if vs != 0 {
		dev.AttachShader(program, vs)
	}

	if fs != 0 {
		dev.AttachShader(program, fs)
	}

	if ok, info := dev.LinkProgram(program); !ok {
		dev.DeleteProgram(program)
		log.Println("program link error:", strings.TrimRight(info, "\x00\n"))
		return 0, ErrLink
	}

	return program, nil
}

// compileShader compiles the given shader source.
func compileShader(dev Device, source string, stype uint32) (uint32, error) {
	shader := dev.CreateShader(stype)
	if shader == 0 {
		return 0, errors.Wrapf(ErrAlloc, "failed to create shader")
	}

	if ok, info := dev.CompileShader(shader, source); !ok {
		dev.DeleteShader(shader)
		log.Println("shader compile error:", strings.TrimRight(info, "\x00\n"))
		return 0, ErrCompile
	}

	return shader, nil
}
