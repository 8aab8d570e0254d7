package sim

import (
	"log/slog"

	"github.com/gogpu/sim/platform"
)

// Option configures a Host during creation.
//
// Example:
//
//	// Default configuration, platforms from the default registry
//	h, err := sim.New()
//
//	// 320x240 output, stop after 10 frames
//	cfg := platform.DefaultConfig()
//	cfg.Width, cfg.Height, cfg.MaxFrames = 320, 240, 10
//	h, err := sim.New(sim.WithConfig(cfg))
type Option func(*hostOptions)

// hostOptions holds optional configuration for Host creation.
type hostOptions struct {
	config    platform.Config
	platforms *platform.Registry
	logger    *slog.Logger
}

// defaultOptions returns the default host options.
func defaultOptions() hostOptions {
	return hostOptions{
		config:    platform.DefaultConfig(),
		platforms: platform.Default(),
	}
}

// WithConfig sets the configuration handed to platform factories.
// A non-empty LogLevel installs a stderr text logger at that level unless
// WithLogger is also given.
func WithConfig(cfg platform.Config) Option {
	return func(o *hostOptions) {
		o.config = cfg
	}
}

// WithPlatformRegistry sets the registry Initialize draws platforms from
// when none is given explicitly.
func WithPlatformRegistry(r *platform.Registry) Option {
	return func(o *hostOptions) {
		if r != nil {
			o.platforms = r
		}
	}
}

// WithLogger installs l as the sim logger. See SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *hostOptions) {
		o.logger = l
	}
}
