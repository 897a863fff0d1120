package config

import (
	"fmt"
	"strings"
)

var validOutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.RootDir == "" {
		return fmt.Errorf("root_dir is required")
	}

	if c.OutputFormat != "" && !contains(validOutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of %s)", c.OutputFormat, strings.Join(validOutputFormats, ", "))
	}

	// Missing source systems or domains are not an error: generation
	// simply yields no paths.
	return nil
}

// trimAll trims whitespace around every value and drops blanks.
func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
