// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/sim/component"
	"github.com/gogpu/sim/message"
)

type stubPlatform struct{ name string }

func (p *stubPlatform) Capabilities() []*component.Capability { return []*component.Capability{Capability} }
func (p *stubPlatform) Initialize(*message.Dispatcher) error  { return nil }
func (p *stubPlatform) CreateSupportedComponents() ([]component.Provider, error) {
	return nil, nil
}
func (p *stubPlatform) ProcessEvents() error            { return nil }
func (p *stubPlatform) ShouldExit() bool                { return true }
func (p *stubPlatform) EndFrame() error                 { return nil }
func (p *stubPlatform) OutputSize() (width, height int) { return 1, 1 }
func (p *stubPlatform) Dispose() error                  { return nil }

func succeed(name string) Factory {
	return func(Config) (Platform, error) { return &stubPlatform{name: name}, nil }
}

func fail(err error) Factory {
	return func(Config) (Platform, error) { return nil, err }
}

func TestRegistryFirstSuccessWins(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", fail(errors.New("no display")))
	r.Register("nil", func(Config) (Platform, error) { return nil, nil })
	r.Register("first", succeed("first"))
	r.Register("second", succeed("second"))

	if got, want := r.Names(), []string{"broken", "nil", "first", "second"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	p, name, err := r.Create(DefaultConfig())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if name != "first" || p.(*stubPlatform).name != "first" {
		t.Errorf("Create picked %q, want first", name)
	}
}

func TestRegistryNoPlatform(t *testing.T) {
	if _, _, err := NewRegistry().Create(DefaultConfig()); !errors.Is(err, ErrNoPlatformAvailable) {
		t.Errorf("empty registry error = %v", err)
	}

	r := NewRegistry()
	cause := errors.New("no display")
	r.Register("x11", fail(cause))
	_, _, err := r.Create(DefaultConfig())
	if !errors.Is(err, ErrNoPlatformAvailable) || !errors.Is(err, cause) {
		t.Errorf("Create error = %v, want ErrNoPlatformAvailable wrapping the cause", err)
	}
}

func TestRegistryPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(r *Registry)
	}{
		{"nil factory", func(r *Registry) { r.Register("a", nil) }},
		{"duplicate", func(r *Registry) {
			r.Register("a", succeed("a"))
			r.Register("a", succeed("a"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(NewRegistry())
		})
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr error
	}{
		{
			name: "empty uses defaults",
			yaml: "",
			want: DefaultConfig(),
		},
		{
			name: "overrides",
			yaml: "title: demo\nwidth: 320\nheight: 240\nmax_frames: 5\nlog_level: debug\n",
			want: Config{Title: "demo", Width: 320, Height: 240, VSync: true, MaxFrames: 5, LogLevel: "debug"},
		},
		{
			name:    "bad size",
			yaml:    "width: 0\n",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "bad level",
			yaml:    "log_level: loud\n",
			wantErr: ErrInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.yaml))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseConfig() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("ParseConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := ParseConfig([]byte("colour: red\n")); err == nil {
		t.Error("unknown fields should be rejected")
	}
}

func TestLoadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "from file"
	cfg.MaxFrames = 3
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != cfg {
		t.Errorf("LoadConfig() = %+v, want %+v", got, cfg)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestTOMLConfig(t *testing.T) {
	got, err := ParseTOMLConfig([]byte("title = \"toml\"\nwidth = 64\nheight = 48\n"))
	if err != nil {
		t.Fatalf("ParseTOMLConfig: %v", err)
	}
	want := DefaultConfig()
	want.Title, want.Width, want.Height = "toml", 64, 48
	if got != want {
		t.Errorf("ParseTOMLConfig() = %+v, want %+v", got, want)
	}
	if _, err := ParseTOMLConfig([]byte("colour = \"red\"\n")); err == nil {
		t.Error("unknown fields should be rejected")
	}

	data, err := want.EncodeTOML()
	if err != nil {
		t.Fatalf("EncodeTOML: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sim.toml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if loaded, err := LoadConfig(path); err != nil || loaded != want {
		t.Errorf("LoadConfig(.toml) = %+v, %v", loaded, err)
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	if l, _ := cfg.SlogLevel(); l != slog.LevelInfo {
		t.Errorf("default level = %v, want info", l)
	}
	cfg.LogLevel = "WARN"
	if l, _ := cfg.SlogLevel(); l != slog.LevelWarn {
		t.Errorf("level = %v, want warn", l)
	}
}
