package config

import "sync"

// RenderSettings holds render settings that can change while the viewer runs.
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	fpsLimit       int // 0 means unlimited
}

var globalRenderSettings = &RenderSettings{
	renderDistance: 8,
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if distance < 1 {
		distance = 1
	}
	if distance > 32 {
		distance = 32
	}

	globalRenderSettings.renderDistance = distance
}

// GetFPSLimit returns the frame cap; 0 means unlimited.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values disable it.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	globalRenderSettings.fpsLimit = limit
}

// Apply copies the runtime-adjustable parts of cfg into the global settings.
func Apply(cfg *Config) {
	SetRenderDistance(cfg.Render.RenderDistance)
	SetFPSLimit(cfg.Window.FPSLimit)
}
