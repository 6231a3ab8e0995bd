package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/tricolor/config"
)

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *config.Config {
	c := config.Default()

	flag.Usage = func() {
		fmt.Printf("%s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}

	file := flag.String("config", "", "Path to a TOML configuration file.")
	width := flag.Int("width", c.Width, "Window width.")
	height := flag.Int("height", c.Height, "Window height.")
	shaders := flag.String("shaders", c.ShaderDir, "Directory holding the vertex and fragment shaders.")
	vsync := flag.Bool("vsync", c.VSync, "Synchronize with the display refresh rate.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(exitOK)
	}

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(exitUsage)
	}

	if *file != "" {
		if err := config.LoadFile(*file, c); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitUsage)
		}
	}

	// Flags given explicitly take precedence over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			c.Width = *width
		case "height":
			c.Height = *height
		case "shaders":
			c.ShaderDir = *shaders
		case "vsync":
			c.VSync = *vsync
		}
	})

	if err := c.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	return c
}
