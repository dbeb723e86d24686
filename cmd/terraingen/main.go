// Package main is the headless terrain generator: it runs the full
// generation pipeline and writes the result as an OBJ model plus a scene
// record, without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/skyfell/terrascape/internal/config"
	"github.com/skyfell/terrascape/internal/export"
	"github.com/skyfell/terrascape/internal/logger"
	"github.com/skyfell/terrascape/internal/scene"
	"github.com/skyfell/terrascape/internal/terrain"
)

// Generator-only flags; the shared ones (-config, -seed, -size, -scene,
// -debug) come from the config package.
var (
	// -height already means window height in the shared set, so the
	// vertical range gets its own name.
	flagGrid      = flag.Float64("grid", 0, "World size of one grid square")
	flagRelief    = flag.Float64("relief", 0, "Full vertical height range")
	flagWater     = flag.Float64("water", 0, "Water plane height (negative is below the midline)")
	flagRoughness = flag.Float64("roughness", 0, "Diamond-square sharpness exponent")
	flagSmooth    = flag.Float64("smooth", 0, "Gaussian smoothing sigma")
	flagObjects   = flag.Uint("objects", 0, "Number of scattered objects")
	flagOut       = flag.String("o", "terrain.obj", "Output OBJ path (.gz compresses)")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	params := cfg.ToParams()
	if *flagGrid > 0 {
		params.GridSize = float32(*flagGrid)
	}
	if *flagRelief > 0 {
		params.HeightRange = float32(*flagRelief)
	}
	if *flagWater != 0 {
		params.WaterLevel = float32(*flagWater)
	}
	if *flagRoughness != 0 {
		params.Roughness = *flagRoughness
	}
	if *flagSmooth != 0 {
		params.Smoothing = *flagSmooth
	}
	if *flagObjects > 0 {
		params.ObjectCount = uint32(*flagObjects)
	}

	start := time.Now()
	mesh, err := terrain.Generate(params)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}

	verts, indices := 0, 0
	for _, m := range mesh.Chain() {
		verts += m.VertexCount()
		indices += m.IndexCount()
	}
	logger.Info("terrain generated",
		zap.Uint32("seed", mesh.Seed),
		zap.Int("meshes", len(mesh.Chain())),
		zap.Int("vertices", verts),
		zap.Int("triangles", indices/3),
		zap.Duration("took", time.Since(start)),
	)

	if err := export.WriteOBJFile(*flagOut, mesh); err != nil {
		logger.Error("OBJ export failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("model written", zap.String("file", *flagOut))

	if cfg.Scene.File != "" {
		rec := scene.Default()
		rec.Seed = mesh.Seed
		rec.Flags = terrain.DefaultRenderCaps().Pack()
		if err := scene.Save(cfg.Scene.File, rec); err != nil {
			logger.Error("scene record save failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("scene record written", zap.String("file", cfg.Scene.File))
	}
}
