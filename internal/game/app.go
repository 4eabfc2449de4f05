package game

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"mcvox/internal/config"
	standardInput "mcvox/internal/input"
	"mcvox/internal/logger"
	"mcvox/internal/profiling"
	"mcvox/internal/world"
)

const (
	slowFrame       = 16 * time.Millisecond
	statsInterval   = time.Second
	profilingTopN   = 5
	dragSensitivity = 0.3 // degrees per pixel
)

// App runs the viewer frame loop around a single Session.
type App struct {
	window       *glfw.Window
	inputManager *standardInput.InputManager
	session      *Session

	fpsLimiter    *FPSLimiter
	lastTime      time.Time
	frames        int
	lastStats     time.Time
	showProfiling bool
	autosave      time.Duration
	lastSave      time.Time

	// Cursor state for drag-to-orbit.
	dragging     bool
	lastX, lastY float64
}

// NewApp creates the session and wires window callbacks.
func NewApp(window *glfw.Window, im *standardInput.InputManager, cfg *config.Config) (*App, error) {
	session, err := NewSession(window, cfg)
	if err != nil {
		return nil, err
	}
	a := &App{
		window:       window,
		inputManager: im,
		session:      session,
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
		lastStats:    time.Now(),
		autosave:     time.Duration(cfg.World.AutosaveSecs) * time.Second,
		lastSave:     time.Now(),
	}
	SetupInputHandlers(a)
	return a, nil
}

// Run ticks until the window closes, quit fires, or a frame fails.
func (a *App) Run(quit <-chan struct{}) error {
	for !a.window.ShouldClose() {
		select {
		case <-quit:
			return nil
		default:
		}
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the session. Call from the thread that owns the GL context.
func (a *App) Close() {
	if a.session != nil {
		a.session.Cleanup()
		a.session = nil
	}
}

func (a *App) tick() error {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	if a.inputManager.JustPressed(standardInput.ActionToggleProfiling) {
		a.showProfiling = !a.showProfiling
	}

	if err := a.session.Update(dt, a.inputManager); err != nil {
		return err
	}
	a.session.Render(dt)

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	processing := time.Since(startTick) - profiling.SumWithPrefix("glfw.")
	if processing > slowFrame {
		logger.Warn("slow frame",
			zap.Duration("took", processing), zap.String("top", profiling.TopN(profilingTopN)))
	}
	a.reportStats()
	a.maybeAutosave()

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait(a.session.Idle())
	return nil
}

// reportStats logs frame rate and scheduler progress once per interval.
func (a *App) reportStats() {
	a.frames++
	if time.Since(a.lastStats) < statsInterval {
		return
	}
	w := a.session.World
	fields := []zap.Field{
		zap.Int("fps", a.frames),
		zap.Int("chunks", len(w.Chunks())),
		zap.Int("pendingChunks", w.Scheduler().Pending()),
		zap.Int("subchunksRebuilt", w.Scheduler().Rebuilt()),
		zap.Int("visibleChunks", profiling.Counter("renderer.visibleChunks")),
	}
	if a.showProfiling {
		fields = append(fields, zap.String("top", profiling.TopN(profilingTopN)))
	}
	logger.Info("frame stats", fields...)
	a.frames = 0
	a.lastStats = time.Now()
}

func (a *App) maybeAutosave() {
	if a.autosave <= 0 || time.Since(a.lastSave) < a.autosave {
		return
	}
	if err := a.session.Save(); err != nil {
		logger.Error("autosave failed", zap.Error(err))
	}
	a.lastSave = time.Now()
}

// World exposes the session's world.
func (a *App) World() *world.World { return a.session.World }
