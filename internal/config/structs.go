package config

// Config represents the complete configuration for the certex extraction
// engine. It supports loading from configuration files, environment variables
// and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// OCR settings
	OCR OCRConfig `mapstructure:"ocr" yaml:"ocr" json:"ocr"`

	// Image enhancement settings
	Enhancement EnhancementConfig `mapstructure:"enhancement" yaml:"enhancement" json:"enhancement"`

	// Escalation settings
	Escalation EscalationConfig `mapstructure:"escalation" yaml:"escalation" json:"escalation"`

	// Optional cloud AI recognizer
	AI AIConfig `mapstructure:"ai" yaml:"ai" json:"ai"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// OCRConfig contains OCR execution settings.
type OCRConfig struct {
	Languages  []string `mapstructure:"languages" yaml:"languages" json:"languages"`
	MaxWorkers int      `mapstructure:"max_workers" yaml:"max_workers" json:"max_workers"`
}

// EnhancementConfig contains the standard-path enhancement settings.
type EnhancementConfig struct {
	UpscaleMinSide int     `mapstructure:"upscale_min_side" yaml:"upscale_min_side" json:"upscale_min_side"`
	UpscaleFactor  int     `mapstructure:"upscale_factor" yaml:"upscale_factor" json:"upscale_factor"`
	Contrast       float64 `mapstructure:"contrast" yaml:"contrast" json:"contrast"`
	Brightness     float64 `mapstructure:"brightness" yaml:"brightness" json:"brightness"`
	ThresholdBias  int     `mapstructure:"threshold_bias" yaml:"threshold_bias" json:"threshold_bias"`
}

// EscalationConfig controls the bounded low-confidence retry.
type EscalationConfig struct {
	ConfidenceThreshold int `mapstructure:"confidence_threshold" yaml:"confidence_threshold" json:"confidence_threshold"`
}

// AIConfig contains the optional cloud recognizer settings.
type AIConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Provider   string `mapstructure:"provider" yaml:"provider" json:"provider"` // "vision" or "gemini"
	Model      string `mapstructure:"model" yaml:"model" json:"model"`
	APIKey     string `mapstructure:"api_key" yaml:"api_key" json:"api_key"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "text" or "json"
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}
