// Package main draws a vertex-coloured triangle with shaders loaded from disk.
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

var (
	flagVertex   = flag.String("vertex", "", "Vertex shader source file")
	flagFragment = flag.String("fragment", "", "Fragment shader source file")
	flagWatch    = flag.Bool("watch", false, "Reload shaders when their source files change")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load(func(c *config.Config) {
		if *flagVertex != "" {
			c.Shaders.Vertex = *flagVertex
		}
		if *flagFragment != "" {
			c.Shaders.Fragment = *flagFragment
		}
		if *flagWatch {
			c.Shaders.Watch = true
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

	logger.Info("=== Shader Class ===",
		zap.String("vertex", cfg.Shaders.Vertex),
		zap.String("fragment", cfg.Shaders.Fragment),
	)
	logger.Sugar.Debugf("Config: %+v", cfg)

	var opts []shader.Option
	if cfg.Shaders.Strict {
		opts = append(opts, shader.WithStrict())
	}

	err = platform.Run(cfg, func(drv gpu.Driver) (app.Scene, error) {
		s, err := scene.NewColoredTriangle(drv, cfg.Shaders.Vertex, cfg.Shaders.Fragment, cfg.Render.Offset, opts...)
		if err != nil {
			return nil, err
		}
		if cfg.Shaders.Watch {
			if err := s.Watch(); err != nil {
				logger.Warn("shader hot reload disabled", zap.Error(err))
			}
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
