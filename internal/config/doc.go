// Package config loads, normalizes, and validates subrename configuration.
//
// Configuration lives in a TOML file resolved from an explicit --config flag,
// ~/.config/subrename/config.toml, or ./subrename.toml in that order. Missing
// files fall back to Default(). Paths support "~" expansion and are made
// absolute during normalization.
package config
