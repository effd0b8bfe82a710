package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return fmt.Errorf("paths.data_dir must not be empty")
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	for name, v := range map[string]int{
		"matching.auto_accept":          m.AutoAccept,
		"matching.review_low":           m.ReviewLow,
		"matching.position_min":         m.PositionMin,
		"matching.position_unknown_min": m.PositionUnknownMin,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %d", name, v)
		}
	}
	if m.ReviewLow > m.AutoAccept {
		return fmt.Errorf("matching.review_low (%d) must not exceed matching.auto_accept (%d)", m.ReviewLow, m.AutoAccept)
	}
	if m.QuickMaxCandidates <= 0 {
		return fmt.Errorf("matching.quick_max_candidates must be positive, got %d", m.QuickMaxCandidates)
	}
	if m.FullMaxCandidates <= 0 {
		return fmt.Errorf("matching.full_max_candidates must be positive, got %d", m.FullMaxCandidates)
	}
	if m.TokenCeiling < 0 {
		return fmt.Errorf("matching.token_ceiling must not be negative, got %d", m.TokenCeiling)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
