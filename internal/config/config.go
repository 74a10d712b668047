// Package config defines the resource bounds the compiler and virtual
// machine enforce, loaded from environment variables with sensible
// defaults via github.com/caarlos0/env, in the style the teacher project's
// go.mod already pulled this dependency in for but never wired up.
package config

import "github.com/caarlos0/env/v6"

// Limits holds every fatal resource bound spec.md §5 requires. The default
// values are exactly those spec.md names; each is overridable through its
// environment variable for embedders that need tighter or looser bounds.
type Limits struct {
	MaxLocals    int `env:"ILEX_MAX_LOCALS" envDefault:"256"`
	MaxConstants int `env:"ILEX_MAX_CONSTANTS" envDefault:"256"`
	MaxJump      int `env:"ILEX_MAX_JUMP" envDefault:"65535"`
	MaxFrames    int `env:"ILEX_MAX_FRAMES" envDefault:"64"`
	MaxStack     int `env:"ILEX_MAX_STACK" envDefault:"256"`
}

// Default returns spec.md's compiled-in default limits, ignoring the
// environment. Use LoadLimits to honor ILEX_MAX_* overrides.
func Default() Limits {
	return Limits{
		MaxLocals:    256,
		MaxConstants: 256,
		MaxJump:      65535,
		MaxFrames:    64,
		MaxStack:     256,
	}
}

// LoadLimits parses ILEX_MAX_* environment variables over spec.md's
// defaults, returning an error if any value fails to parse as an int.
func LoadLimits() (Limits, error) {
	var l Limits
	if err := env.Parse(&l); err != nil {
		return Limits{}, err
	}
	return l, nil
}
