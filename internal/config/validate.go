package config

import (
	"errors"
	"fmt"
	"strings"

	"subrename/internal/signature"
)

// Validate ensures the configuration contains usable values.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Media.MovieExtensions) == 0 {
		errs = append(errs, errors.New("media.movie_extensions must list at least one extension"))
	}
	if len(c.Media.SubtitleExtensions) == 0 {
		errs = append(errs, errors.New("media.subtitle_extensions must list at least one extension"))
	}
	if overlap := intersect(c.Media.MovieExtensions, c.Media.SubtitleExtensions); len(overlap) > 0 {
		errs = append(errs, fmt.Errorf("media: extensions listed as both movie and subtitle: %s", strings.Join(overlap, ", ")))
	}
	if _, err := signature.ParsePolicy(c.Matching.Policy); err != nil {
		errs = append(errs, fmt.Errorf("matching.policy: %w", err))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level))
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		errs = append(errs, errors.New("history.path must be set when history is enabled"))
	}
	return errors.Join(errs...)
}

func intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	var out []string
	for _, v := range b {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
