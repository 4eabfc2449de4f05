// Command voxelview opens a window onto a generated voxel world and exercises
// incremental subchunk meshing with direct or indirect multidraw.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
	"go.uber.org/zap"

	"mcvox/internal/config"
	"mcvox/internal/game"
	"mcvox/internal/input"
	"mcvox/internal/logger"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	config.Apply(cfg)
	closer.Bind(logger.Sync)

	if config.WriteConfigRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("write config", zap.Error(err))
			closer.Exit(closer.ExitCodeErr)
		}
		logger.Info("config written", zap.String("path", path))
	}

	if err := glfw.Init(); err != nil {
		closer.Fatalln("glfw init:", err)
	}

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		glfw.Terminate()
		closer.Fatalln(err)
	}

	app, err := game.NewApp(window, input.NewInputManager(), cfg)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		window.Destroy()
		glfw.Terminate()
		closer.Exit(closer.ExitCodeErr)
	}

	// A signal makes closer run its hooks on its own goroutine. GL resources
	// belong to this thread, so the hook only asks the loop to stop and waits.
	quit := make(chan struct{})
	done := make(chan struct{})
	closer.Bind(func() {
		select {
		case quit <- struct{}{}:
			<-done
		case <-done:
		}
	})

	runErr := app.Run(quit)
	app.Close()
	window.Destroy()
	glfw.Terminate()
	close(done)

	if runErr != nil {
		logger.Error("viewer stopped", zap.Error(runErr))
		closer.Exit(closer.ExitCodeErr)
	}
	logger.Info("bye")
	closer.Close()
}
