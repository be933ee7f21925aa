// Package config handles loading and saving of application settings.
package config

import (
	"fmt"
	"runtime"
)

// Config holds all settings shared by the commands.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	GL      GLConfig      `yaml:"gl"`
	Render  RenderConfig  `yaml:"render"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Backend   string `yaml:"backend"` // glfw or sdl
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
}

// GLConfig holds the requested context version and profile.
type GLConfig struct {
	Major         int  `yaml:"major"`
	Minor         int  `yaml:"minor"`
	CoreProfile   bool `yaml:"core_profile"`
	ForwardCompat bool `yaml:"forward_compat"`
}

// RenderConfig holds per-frame drawing settings.
type RenderConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	Wireframe  bool       `yaml:"wireframe"`
	DrawMode   string     `yaml:"draw_mode"` // arrays or elements
	Offset     float32    `yaml:"offset"`
}

// ShaderConfig holds shader source locations and the failure policy.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
	Strict   bool   `yaml:"strict"`
	Watch    bool   `yaml:"watch"` // reload on change
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

const (
	BackendGLFW = "glfw"
	BackendSDL  = "sdl"

	DrawArrays   = "arrays"
	DrawElements = "elements"
)

// Default returns a Config with the values the tutorial programs use.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "LearnOpenGL",
			Width:     800,
			Height:    600,
			Backend:   BackendGLFW,
			Resizable: true,
			VSync:     true,
		},
		GL: GLConfig{
			Major:         3,
			Minor:         3,
			CoreProfile:   true,
			ForwardCompat: runtime.GOOS == "darwin",
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
			DrawMode:   DrawArrays,
			Offset:     0.25,
		},
		Shaders: ShaderConfig{
			Vertex:   "shaders/simple.vert",
			Fragment: "shaders/simple.frag",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings that cannot produce a window.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Window.Backend {
	case BackendGLFW, BackendSDL:
	default:
		return fmt.Errorf("unknown window backend %q", c.Window.Backend)
	}
	switch c.Render.DrawMode {
	case DrawArrays, DrawElements:
	default:
		return fmt.Errorf("unknown draw mode %q", c.Render.DrawMode)
	}
	if c.GL.Major < 3 || (c.GL.Major == 3 && c.GL.Minor < 3) {
		return fmt.Errorf("OpenGL %d.%d is below the required 3.3", c.GL.Major, c.GL.Minor)
	}
	return nil
}
