package config

import (
	"fmt"
	"strings"
)

const (
	// ProviderVision selects the Google Cloud Vision backend.
	ProviderVision = "vision"
	// ProviderGemini selects the Gemini structured-output backend.
	ProviderGemini = "gemini"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.LogLevel != "" && !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.OCR.MaxWorkers < 0 {
		return fmt.Errorf("invalid ocr max_workers: %d", c.OCR.MaxWorkers)
	}
	if c.Enhancement.UpscaleFactor < 1 || c.Enhancement.UpscaleFactor > 4 {
		return fmt.Errorf("invalid enhancement upscale_factor: %d (must be 1-4)", c.Enhancement.UpscaleFactor)
	}
	if t := c.Escalation.ConfidenceThreshold; t <= 0 || t > 100 {
		return fmt.Errorf("invalid escalation confidence_threshold: %d (must be 1-100)", t)
	}
	if c.AI.Enabled {
		if c.AI.Provider != ProviderVision && c.AI.Provider != ProviderGemini {
			return fmt.Errorf("invalid ai provider %q (must be %s or %s)",
				c.AI.Provider, ProviderVision, ProviderGemini)
		}
		if c.AI.TimeoutSec <= 0 {
			return fmt.Errorf("invalid ai timeout_sec: %d", c.AI.TimeoutSec)
		}
	}
	if c.Output.Format != "" && c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("invalid output format %q (must be text or json)", c.Output.Format)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
