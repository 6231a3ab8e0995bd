// Package config defines application configuration and loads it from TOML files.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/hexaflex/tricolor/palette"
)

// Config defines program configuration.
type Config struct {
	Width          int                                        `toml:"width"`           // Window width in screen coordinates.
	Height         int                                        `toml:"height"`          // Window height in screen coordinates.
	Title          string                                     `toml:"title"`           // Window title prefix.
	VSync          bool                                       `toml:"vsync"`           // Synchronize buffer swaps with the display?
	ShaderDir      string                                     `toml:"shader_dir"`      // Directory holding the shader sources.
	VertexShader   string                                     `toml:"vertex_shader"`   // Vertex shader file, relative to ShaderDir.
	FragmentShader string                                     `toml:"fragment_shader"` // Fragment shader file, relative to ShaderDir.
	Background     [4]float32                                 `toml:"background"`      // Framebuffer clear color.
	Colors         [palette.Count][palette.Components]float32 `toml:"colors"`          // Initial vertex colors.
}

// Default returns the default configuration.
func Default() *Config {
	c := &Config{
		Width:          1280,
		Height:         720,
		Title:          "tricolor",
		VSync:          true,
		ShaderDir:      "shaders",
		VertexShader:   "gaussian.vert",
		FragmentShader: "gaussian.frag",
		Background:     [4]float32{0.1, 0.12, 0.15, 1},
	}

	for i, col := range palette.Default() {
		c.Colors[i] = col
	}

	return c
}

// Load decodes TOML from r into c. Keys missing from the input keep the
// value already in c; unknown keys are an error. The result is validated.
func Load(r io.Reader, c *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return errors.Errorf("config: line %d, column %d: %s", row, col, derr.Error())
		}
		return errors.Wrapf(err, "config")
	}

	return c.Validate()
}

// LoadFile loads the TOML file at path into c.
func LoadFile(path string, c *Config) error {
	fd, err := os.Open(path)
	if err != nil {
		return err
	}

	defer fd.Close()

	return errors.Wrapf(Load(fd, c), "%s", path)
}

// Palette returns the initial vertex colors.
func (c *Config) Palette() palette.Palette {
	var p palette.Palette
	for i, col := range c.Colors {
		p[i] = col
	}
	return p
}

// Validate checks c for values the program can not run with.
// All problems are reported in a single ErrorSet.
func (c *Config) Validate() error {
	var errs ErrorSet

	if c.Width <= 0 || c.Height <= 0 {
		errs.Append(errors.Errorf("invalid window size %dx%d", c.Width, c.Height))
	}

	if strings.TrimSpace(c.VertexShader) == "" {
		errs.Append(errors.New("vertex shader path is empty"))
	}

	if strings.TrimSpace(c.FragmentShader) == "" {
		errs.Append(errors.New("fragment shader path is empty"))
	}

	if !inUnitRange(c.Background[:]) {
		errs.Append(errors.Errorf("background color %v is out of range [0, 1]", c.Background))
	}

	for i, col := range c.Colors {
		if !inUnitRange(col[:]) {
			errs.Append(errors.Errorf("vertex %d color %v is out of range [0, 1]", i, col))
		}
	}

	if errs.Len() == 0 {
		return nil
	}

	return errs
}

func (c *Config) String() string {
	return fmt.Sprintf("%dx%d vsync=%v shaders=%s/{%s,%s}",
		c.Width, c.Height, c.VSync, c.ShaderDir, c.VertexShader, c.FragmentShader)
}

func inUnitRange(v []float32) bool {
	for _, f := range v {
		if f < 0 || f > 1 {
			return false
		}
	}
	return true
}
