// Package config handles viewer and generator configuration loading.
package config

import "github.com/skyfell/terrascape/internal/terrain"

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// TerrainConfig holds the generation parameters.
type TerrainConfig struct {
	SizeLog2    uint32  `yaml:"size_log2"`
	Seed        uint32  `yaml:"seed"` // 0 picks a fresh seed
	GridSize    float32 `yaml:"grid_size"`
	HeightRange float32 `yaml:"height_range"`
	WaterLevel  float32 `yaml:"water_level"`
	Roughness   float64 `yaml:"roughness"`
	Smoothing   float64 `yaml:"smoothing"`
	ObjectCount uint32  `yaml:"object_count"`
}

// SceneConfig holds scene record persistence settings.
type SceneConfig struct {
	File string `yaml:"file"` // empty disables load/save
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Terrain: TerrainConfig{
			SizeLog2:    terrain.DefaultSizeLog2,
			GridSize:    terrain.DefaultGridSize,
			HeightRange: terrain.DefaultHeightRange,
			WaterLevel:  terrain.DefaultWaterLevel,
			Roughness:   terrain.DefaultRoughness,
			Smoothing:   terrain.DefaultSmoothing,
			ObjectCount: terrain.DefaultObjectCount,
		},
		Scene: SceneConfig{
			File: "scene.txt",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ToParams builds generation parameters from the terrain section, with the
// default palette and every generation capability enabled.
func (c *Config) ToParams() terrain.Params {
	return terrain.Params{
		SizeLog2:    c.Terrain.SizeLog2,
		Seed:        c.Terrain.Seed,
		GridSize:    c.Terrain.GridSize,
		HeightRange: c.Terrain.HeightRange,
		WaterLevel:  c.Terrain.WaterLevel,
		Roughness:   c.Terrain.Roughness,
		Smoothing:   c.Terrain.Smoothing,
		Band:        terrain.DefaultBand(),
		ObjectCount: c.Terrain.ObjectCount,
		Caps:        terrain.AllGenerationCaps(),
	}
}
