package main

import (
	"log"
	"os"
	"runtime"
)

func init() {
	// GLFW and OpenGL calls must all come from the main thread.
	runtime.LockOSThread()
}

func main() {
	err := NewApp(parseArgs()).Run()
	if err != nil {
		log.Println(err)
	}
	os.Exit(exitCode(err))
}
