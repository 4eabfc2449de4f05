// Package config handles engine configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all engine settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	World   WorldConfig   `yaml:"world"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings for the viewer.
type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"`
}

// RenderConfig holds chunk meshing and draw submission settings.
type RenderConfig struct {
	// IndirectRendering selects glMultiDrawElementsIndirect over the CPU-issued
	// glMultiDrawElementsBaseVertex path.
	IndirectRendering bool `yaml:"indirect_rendering"`
	// ChunkUpdates bounds the number of subchunk rebuilds per tick.
	ChunkUpdates   int    `yaml:"chunk_updates"`
	RenderDistance int    `yaml:"render_distance"` // in chunks
	ShaderDir      string `yaml:"shader_dir"`
}

// WorldConfig holds world data locations and demo terrain settings.
type WorldConfig struct {
	BlocksFile string `yaml:"blocks_file"`
	DemoRadius int    `yaml:"demo_radius"` // chunks generated around the origin by the viewer
	Seed       int64  `yaml:"seed"`
	// SaveFile is the chunk database. Empty disables saving.
	SaveFile     string `yaml:"save_file"`
	AutosaveSecs int    `yaml:"autosave_secs"` // 0 saves only on exit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:    854,
			Height:   480,
			Title:    "mcvox",
			VSync:    false,
			FPSLimit: 0,
		},
		Render: RenderConfig{
			IndirectRendering: false,
			ChunkUpdates:      4,
			RenderDistance:    8,
			ShaderDir:         "assets/shaders/chunk",
		},
		World: WorldConfig{
			BlocksFile:   "data/blocks.mcpy",
			DemoRadius:   2,
			Seed:         123,
			SaveFile:     "",
			AutosaveSecs: 30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.ChunkUpdates < 1 {
		errs = append(errs, fmt.Errorf("render.chunk_updates must be at least 1, got %d", c.Render.ChunkUpdates))
	}
	if c.Render.RenderDistance < 1 {
		errs = append(errs, fmt.Errorf("render.render_distance must be at least 1, got %d", c.Render.RenderDistance))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.World.BlocksFile == "" {
		errs = append(errs, errors.New("world.blocks_file is required"))
	}
	if c.World.DemoRadius < 0 {
		errs = append(errs, fmt.Errorf("world.demo_radius must not be negative, got %d", c.World.DemoRadius))
	}
	if c.World.AutosaveSecs < 0 {
		errs = append(errs, fmt.Errorf("world.autosave_secs must not be negative, got %d", c.World.AutosaveSecs))
	}
	return errors.Join(errs...)
}
