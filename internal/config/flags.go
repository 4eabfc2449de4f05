package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagIndirect     = flag.Bool("indirect", false, "Use GPU-indirect multidraw")
	flagChunkUpdates = flag.Int("chunk-updates", 0, "Subchunk rebuilds per tick")
	flagBlocks       = flag.String("blocks", "", "Path to block catalog")
	flagSave         = flag.String("save", "", "Path to chunk save database")
	flagSeed         = flag.Int64("seed", 0, "Demo terrain seed")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagWriteConfig  = flag.Bool("write-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigRequested reports whether -write-config was given.
func WriteConfigRequested() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagIndirect {
		cfg.Render.IndirectRendering = true
	}
	if *flagChunkUpdates > 0 {
		cfg.Render.ChunkUpdates = *flagChunkUpdates
	}
	if *flagBlocks != "" {
		cfg.World.BlocksFile = *flagBlocks
	}
	if *flagSave != "" {
		cfg.World.SaveFile = *flagSave
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
