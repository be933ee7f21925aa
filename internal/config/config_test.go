package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "LearnOpenGL" {
		t.Errorf("expected title LearnOpenGL, got %s", cfg.Window.Title)
	}
	if cfg.Window.Backend != BackendGLFW {
		t.Errorf("expected glfw backend, got %s", cfg.Window.Backend)
	}
	if cfg.GL.Major != 3 || cfg.GL.Minor != 3 || !cfg.GL.CoreProfile {
		t.Errorf("expected 3.3 core profile, got %+v", cfg.GL)
	}
	if cfg.Render.ClearColor != [4]float32{0.2, 0.3, 0.3, 1.0} {
		t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
	}
	if cfg.Render.Offset != 0.25 {
		t.Errorf("expected offset 0.25, got %f", cfg.Render.Offset)
	}
	if cfg.Shaders.Strict {
		t.Error("expected non-strict shader policy by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestMergeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  title: "Shaders"
  width: 1024
  height: 768
  backend: sdl
  vsync: false

gl:
  major: 4
  minor: 1

render:
  clear_color: [0.0, 0.0, 0.0, 1.0]
  wireframe: true
  draw_mode: elements
  offset: 0.5

shaders:
  vertex: "a.vert"
  fragment: "a.frag"
  strict: true

logging:
  level: "debug"
  log_file: "gl.log"
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := mergeFile(cfg, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "Shaders" || cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("unexpected window config %+v", cfg.Window)
	}
	if cfg.Window.Backend != BackendSDL {
		t.Errorf("expected sdl backend, got %s", cfg.Window.Backend)
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if !cfg.Window.Resizable {
		t.Error("resizable should keep its default when absent from the file")
	}
	if cfg.GL.Major != 4 || cfg.GL.Minor != 1 {
		t.Errorf("expected GL 4.1, got %d.%d", cfg.GL.Major, cfg.GL.Minor)
	}
	if cfg.Render.ClearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
	}
	if !cfg.Render.Wireframe || cfg.Render.DrawMode != DrawElements || cfg.Render.Offset != 0.5 {
		t.Errorf("unexpected render config %+v", cfg.Render)
	}
	if cfg.Shaders.Vertex != "a.vert" || cfg.Shaders.Fragment != "a.frag" || !cfg.Shaders.Strict {
		t.Errorf("unexpected shader config %+v", cfg.Shaders)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "gl.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestMergeFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(path, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := mergeFile(cfg, path); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestMergeFileMissing(t *testing.T) {
	cfg := Default()
	if err := mergeFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero width", mutate: func(c *Config) { c.Window.Width = 0 }, wantErr: true},
		{name: "negative height", mutate: func(c *Config) { c.Window.Height = -1 }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Window.Backend = "x11" }, wantErr: true},
		{name: "sdl backend", mutate: func(c *Config) { c.Window.Backend = BackendSDL }},
		{name: "unknown draw mode", mutate: func(c *Config) { c.Render.DrawMode = "strips" }, wantErr: true},
		{name: "old GL", mutate: func(c *Config) { c.GL.Major, c.GL.Minor = 3, 2 }, wantErr: true},
		{name: "GL 4.1", mutate: func(c *Config) { c.GL.Major, c.GL.Minor = 4, 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := configFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := configFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "backend flag",
			setup: func() { *flagBackend = BackendSDL },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Backend != BackendSDL {
					t.Errorf("expected sdl backend, got %s", cfg.Window.Backend)
				}
			},
			teardown: func() { *flagBackend = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1280
				*flagHeight = 720
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
					t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "strict flag",
			setup: func() { *flagStrict = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Shaders.Strict {
					t.Error("expected strict shader policy")
				}
			},
			teardown: func() { *flagStrict = false },
		},
		{
			name:  "wireframe flag",
			setup: func() { *flagWireframe = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Render.Wireframe {
					t.Error("expected wireframe to be enabled")
				}
			},
			teardown: func() { *flagWireframe = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window:\n  width: 1600\n  height: 900\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = path
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window:\n  backend: wayland\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = path
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject an unknown backend")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Backend = BackendSDL
	cfg.Shaders.Vertex = "custom.vert"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := mergeFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Window.Backend != BackendSDL || loaded.Shaders.Vertex != "custom.vert" {
		t.Errorf("saved config did not reload: %+v", loaded)
	}
}

func TestMergeFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window:\n  widht: 640\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := mergeFile(Default(), path); err == nil {
		t.Error("expected an error for a misspelt key")
	}
}

func TestMergeFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := mergeFile(cfg, path); err != nil {
		t.Fatalf("empty file should leave defaults: %v", err)
	}
	if cfg.Window.Width != Default().Window.Width {
		t.Errorf("width changed to %d", cfg.Window.Width)
	}
}

func TestLoadOverridesRunBeforeValidate(t *testing.T) {
	tests := []struct {
		name     string
		override Override
		wantErr  bool
	}{
		{
			name:     "valid override",
			override: func(c *Config) { c.Render.DrawMode = DrawElements },
		},
		{
			name:     "invalid override",
			override: func(c *Config) { c.Render.DrawMode = "strips" },
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			cfg, err := Load(tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Render.DrawMode != DrawElements {
				t.Errorf("override not applied: %s", cfg.Render.DrawMode)
			}
		})
	}
}

func TestLoadWritesConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "out", "config.yaml")
	*flagWriteConfig = out
	*flagBackend = BackendSDL
	defer func() {
		*flagWriteConfig = ""
		*flagBackend = ""
	}()

	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	written := Default()
	if err := mergeFile(written, out); err != nil {
		t.Fatalf("read written config: %v", err)
	}
	if written.Window.Backend != BackendSDL {
		t.Errorf("written backend = %s, want %s", written.Window.Backend, BackendSDL)
	}
}
