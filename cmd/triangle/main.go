// Package main draws the first triangle with embedded shaders.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/app"
	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/engine/gpu"
	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/logger"
	"github.com/Faultbox/learngl/internal/platform"
	"github.com/Faultbox/learngl/internal/scene"
)

var flagMode = flag.String("mode", "", "Draw mode (arrays or elements)")

func main() {
	config.ParseFlags()

	cfg, err := config.Load(func(c *config.Config) {
		if *flagMode != "" {
			c.Render.DrawMode = *flagMode
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.WriteConfigPath() != "" {
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Hello Triangle ===", zap.String("draw_mode", cfg.Render.DrawMode))
	logger.Sugar.Debugf("Config: %+v", cfg)

	var opts []shader.Option
	if cfg.Shaders.Strict {
		opts = append(opts, shader.WithStrict())
	}

	err = platform.Run(cfg, func(drv gpu.Driver) (app.Scene, error) {
		s, err := scene.NewTriangle(drv, cfg.Render.DrawMode, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	var initErr *platform.InitError
	switch {
	case errors.As(err, &initErr):
		logger.Error("failed to initialize", zap.Error(err))
		logger.Sync()
		os.Exit(-1)
	case err != nil:
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
