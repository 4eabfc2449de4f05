package game

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"mcvox/internal/block"
	"mcvox/internal/config"
	"mcvox/internal/graphics"
	"mcvox/internal/graphics/renderables/chunks"
	"mcvox/internal/graphics/renderables/wireframe"
	"mcvox/internal/graphics/renderer"
	standardInput "mcvox/internal/input"
	"mcvox/internal/logger"
	"mcvox/internal/persistence"
	"mcvox/internal/physics"
	"mcvox/internal/profiling"
	"mcvox/internal/world"
)

const (
	orbitSpeed = 90.0 // degrees per second
	panSpeed   = 16.0 // blocks per second
	zoomStep   = 0.9
)

// Session owns the world, its GPU device and the renderer for one run.
type Session struct {
	Window    *glfw.Window
	Renderer  *renderer.Renderer
	Chunks    *chunks.Chunks
	Highlight *wireframe.Wireframe
	World     *world.World
	Editor    *Editor
	Camera    *graphics.Camera

	device      *graphics.Device
	store       *persistence.Store
	wireframeOn bool
}

// NewSession loads the block catalog, creates the GPU device and world, and
// generates the demo terrain.
func NewSession(window *glfw.Window, cfg *config.Config) (*Session, error) {
	catalog, err := block.LoadFile(cfg.World.BlocksFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("texture layers", zap.Strings("names", catalog.Textures()))

	dev, err := graphics.NewDevice()
	if err != nil {
		return nil, fmt.Errorf("create gpu device: %w", err)
	}

	mode := world.DrawDirect
	if cfg.Render.IndirectRendering {
		mode = world.DrawIndirect
	}
	gameWorld := world.New(catalog, dev, world.Options{
		DrawMode:     mode,
		ChunkUpdates: cfg.Render.ChunkUpdates,
	})
	logger.Info("world created",
		zap.Stringer("mode", mode), zap.Int("chunkUpdates", gameWorld.Scheduler().Budget()))

	store, err := openWorld(gameWorld, cfg.World)
	if err != nil {
		gameWorld.Close()
		dev.Release()
		return nil, err
	}

	width, height := window.GetFramebufferSize()
	camera := graphics.NewCamera(width, height)
	camera.Target = mgl32.Vec3{8, groundHeight, 8}
	if y, ok := physics.FindGroundLevel(8, 8, gameWorld); ok {
		camera.Target[1] = float32(y)
	}

	chunksRenderer := chunks.NewChunks(cfg.Render.ShaderDir)
	highlight := wireframe.NewWireframe(filepath.Join(filepath.Dir(cfg.Render.ShaderDir), "wireframe"))
	r, err := renderer.NewRenderer(camera, chunksRenderer, highlight)
	if err != nil {
		gameWorld.Close()
		dev.Release()
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	r.UpdateViewport(width, height)

	return &Session{
		Window:    window,
		Renderer:  r,
		Chunks:    chunksRenderer,
		Highlight: highlight,
		World:     gameWorld,
		Editor:    NewEditor(gameWorld),
		Camera:    camera,
		device:    dev,
		store:     store,
	}, nil
}

// Cleanup saves pending edits and releases GPU resources. It must run on the
// thread owning the context.
func (s *Session) Cleanup() {
	if s.store != nil {
		if err := s.Save(); err != nil {
			logger.Error("final save failed", zap.Error(err))
		}
		if err := s.store.Close(); err != nil {
			logger.Error("close chunk store", zap.Error(err))
		}
	}
	s.World.Close()
	s.Renderer.Dispose()
	s.device.Release()
}

// Update applies input and runs one scheduler round. A failed chunk upload is
// returned as is; the caller decides whether to keep running.
func (s *Session) Update(dt float64, im *standardInput.InputManager) error {
	s.handleInputActions(dt, im)

	hover := s.Editor.Pick(s.Camera.Eye(), s.Camera.Target)
	s.Highlight.SetTarget(hover.HitPosition, hover.Hit)

	if err := s.World.Tick(); err != nil {
		return fmt.Errorf("world tick: %w", err)
	}
	return nil
}

func (s *Session) Render(dt float64) {
	s.Renderer.Render(s.World, dt)
}

// Idle reports whether no chunk work is pending.
func (s *Session) Idle() bool {
	return s.World.Scheduler().Idle()
}

func (s *Session) handleInputActions(dt float64, im *standardInput.InputManager) {
	defer profiling.Track("game.handleInput")()

	step := float32(dt)
	before := *s.Camera
	if im.IsActive(standardInput.ActionModShift) {
		s.pan(step, im)
	} else {
		s.orbit(step, im)
	}

	if im.JustPressed(standardInput.ActionZoomIn) {
		s.Camera.Zoom(zoomStep)
	}
	if im.JustPressed(standardInput.ActionZoomOut) {
		s.Camera.Zoom(1 / zoomStep)
	}
	s.keepEyeClear(before)

	if im.JustPressed(standardInput.ActionPlaceBlock) || im.JustPressed(standardInput.ActionMouseRight) {
		if !s.Editor.Place(s.Camera.Eye(), s.Camera.Target) {
			logger.Debug("block placement refused")
		}
	}
	if im.JustPressed(standardInput.ActionRemoveBlock) {
		s.Editor.Remove(s.Camera.Eye(), s.Camera.Target)
	}
	if im.JustPressed(standardInput.ActionNextBlock) {
		s.Editor.Next()
	}

	if im.JustPressed(standardInput.ActionToggleWireframe) {
		s.wireframeOn = !s.wireframeOn
		s.Chunks.SetWireframe(s.wireframeOn)
	}

	if im.JustPressed(standardInput.ActionRequeueAll) {
		for _, c := range s.World.Chunks() {
			c.QueueAll()
		}
		logger.Info("requeued every chunk", zap.Int("chunks", len(s.World.Chunks())))
	}

	if im.JustPressed(standardInput.ActionQuit) {
		s.Window.SetShouldClose(true)
	}
}

func (s *Session) orbit(step float32, im *standardInput.InputManager) {
	var yaw, pitch float32
	if im.IsActive(standardInput.ActionOrbitLeft) {
		yaw -= orbitSpeed * step
	}
	if im.IsActive(standardInput.ActionOrbitRight) {
		yaw += orbitSpeed * step
	}
	if im.IsActive(standardInput.ActionOrbitUp) {
		pitch += orbitSpeed * step
	}
	if im.IsActive(standardInput.ActionOrbitDown) {
		pitch -= orbitSpeed * step
	}
	if yaw != 0 || pitch != 0 {
		s.Camera.Orbit(yaw, pitch)
	}
}

// pan moves the camera target across the ground plane relative to the view.
func (s *Session) pan(step float32, im *standardInput.InputManager) {
	forward := s.Camera.Target.Sub(s.Camera.Eye())
	forward[1] = 0
	if forward.Len() == 0 {
		return
	}
	forward = forward.Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0})

	var move mgl32.Vec3
	if im.IsActive(standardInput.ActionOrbitUp) {
		move = move.Add(forward)
	}
	if im.IsActive(standardInput.ActionOrbitDown) {
		move = move.Sub(forward)
	}
	if im.IsActive(standardInput.ActionOrbitRight) {
		move = move.Add(right)
	}
	if im.IsActive(standardInput.ActionOrbitLeft) {
		move = move.Sub(right)
	}
	s.Camera.Target = s.Camera.Target.Add(move.Mul(panSpeed * step))
}

// MoveCamera applies move and undoes it if the eye would end up inside a block.
func (s *Session) MoveCamera(move func(c *graphics.Camera)) {
	before := *s.Camera
	move(s.Camera)
	s.keepEyeClear(before)
}

// keepEyeClear restores the previous camera when a move would put the eye
// inside a solid block.
func (s *Session) keepEyeClear(before graphics.Camera) {
	eye := s.Camera.Eye()
	half := mgl32.Vec3{eyeHalfExtent, eyeHalfExtent, eyeHalfExtent}
	if physics.Collides(block.AABB{Min: eye.Sub(half), Max: eye.Add(half)}, s.World) {
		*s.Camera = before
	}
}

// RefreshRender redraws outside the main loop, e.g. while a resize is in progress.
func (s *Session) RefreshRender() {
	s.Renderer.Render(s.World, 0.016)
	s.Window.SwapBuffers()
}

// openWorld fills w from the save database when one is configured, falling
// back to the demo generator for a missing or empty database. A freshly
// generated world is written out at once so the database is never partial.
func openWorld(w *world.World, cfg config.WorldConfig) (*persistence.Store, error) {
	if cfg.SaveFile == "" {
		GenerateDemo(w, cfg.DemoRadius, cfg.Seed)
		return nil, nil
	}

	store, err := persistence.Open(cfg.SaveFile)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	n, err := store.Load(ctx, w)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load %s: %w", cfg.SaveFile, err)
	}
	if n > 0 {
		return store, nil
	}

	GenerateDemo(w, cfg.DemoRadius, cfg.Seed)
	if _, err := store.SaveAll(ctx, w); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("save generated world: %w", err)
	}
	return store, nil
}

// Save writes every chunk edited since the last save. It is a no-op without a
// save database.
func (s *Session) Save() error {
	if s.store == nil {
		return nil
	}
	n, err := s.store.SaveModified(context.Background(), s.World)
	if err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	if n > 0 {
		logger.Debug("world saved", zap.Int("chunks", n))
	}
	return nil
}
