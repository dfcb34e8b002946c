package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/langcert/certex/internal/airec"
	"github.com/langcert/certex/internal/config"
	"github.com/langcert/certex/internal/enhance"
	"github.com/langcert/certex/internal/pipeline"
	"github.com/langcert/certex/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract certificate fields from one or more images",
	Long: `Process one or more certificate images and print the extracted fields.

Supported formats: JPEG, PNG, BMP

Examples:
  certex extract certificate.jpg
  certex extract *.png --format json
  certex extract scan.jpg --ai --ai-provider gemini --output result.json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()

		format := cfg.Output.Format
		if format != outputFormatText && format != outputFormatJSON {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)",
				format, strings.Join([]string{outputFormatText, outputFormatJSON}, ", "))
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		engine, err := buildEngine(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to build extraction pipeline: %w", err)
		}

		var outputs []string
		for _, pth := range args {
			mime := utils.MIMEFromPath(pth)
			if mime == "" {
				return fmt.Errorf("unsupported image format: %s", pth)
			}
			data, err := os.ReadFile(pth) //nolint:gosec // G304: user-supplied input path
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", pth, err)
			}

			out, err := engine.Run(ctx, data, mime)
			if err != nil {
				return fmt.Errorf("extraction failed for %s: %w", pth, err)
			}

			switch format {
			case outputFormatJSON:
				obj := struct {
					File   string            `json:"file"`
					Result *pipeline.Outcome `json:"result"`
				}{File: pth, Result: out}
				bts, err := json.MarshalIndent(obj, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				outputs = append(outputs, string(bts)+"\n")
			default:
				outputs = append(outputs, formatOutcomeText(pth, out))
			}
		}

		final := strings.Join(outputs, "")
		if cfg.Output.File != "" {
			if err := os.WriteFile(cfg.Output.File, []byte(final), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", cfg.Output.File)
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), final)
		return err
	},
}

// buildEngine assembles the extraction pipeline from the resolved configuration.
func buildEngine(ctx context.Context, cfg *config.Config) (*pipeline.Engine, error) {
	enh := enhance.DefaultConfig()
	enh.UpscaleMinSide = cfg.Enhancement.UpscaleMinSide
	enh.UpscaleFactor = cfg.Enhancement.UpscaleFactor
	enh.Contrast = cfg.Enhancement.Contrast
	enh.Brightness = cfg.Enhancement.Brightness
	enh.ThresholdBias = cfg.Enhancement.ThresholdBias

	b := pipeline.NewBuilder().
		WithLanguages(cfg.OCR.Languages...).
		WithMaxWorkers(cfg.OCR.MaxWorkers).
		WithEnhancement(enh).
		WithEscalationThreshold(cfg.Escalation.ConfidenceThreshold).
		WithAITimeout(time.Duration(cfg.AI.TimeoutSec) * time.Second)

	if cfg.AI.Enabled {
		rec, err := buildRecognizer(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b = b.WithAIRecognizer(rec)
	}

	if cfg.Verbose {
		b = b.WithReporter(pipeline.NewLogReporter(slog.Default(), slog.LevelDebug))
	} else {
		b = b.WithReporter(pipeline.NewThrottledReporter(
			pipeline.NewConsoleReporter(os.Stderr, "certex"), 200*time.Millisecond))
	}

	return b.Build()
}

// buildRecognizer constructs the configured AI recognition client.
func buildRecognizer(ctx context.Context, cfg *config.Config) (airec.Recognizer, error) {
	switch cfg.AI.Provider {
	case config.ProviderVision:
		rec, err := airec.NewVisionRecognizer(ctx)
		if err != nil {
			return nil, fmt.Errorf("vision recognizer: %w", err)
		}
		return rec, nil
	case config.ProviderGemini:
		key := cfg.AI.APIKey
		if key == "" {
			key = os.Getenv("GEMINI_API_KEY")
		}
		if key == "" {
			return nil, errors.New("gemini provider requires an API key (ai.api_key or GEMINI_API_KEY)")
		}
		return airec.NewGeminiRecognizer(key, cfg.AI.Model), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.AI.Provider)
	}
}

// formatOutcomeText renders an extraction outcome as human-readable text.
func formatOutcomeText(path string, out *pipeline.Outcome) string {
	var sb strings.Builder
	f := out.Fields
	fmt.Fprintf(&sb, "%s:\n", path)
	fmt.Fprintf(&sb, "  type:       %s\n", f.CertificateType)
	if f.FullName != "" {
		fmt.Fprintf(&sb, "  name:       %s\n", f.FullName)
	}
	if f.CertificateNumber != "" {
		fmt.Fprintf(&sb, "  number:     %s\n", f.CertificateNumber)
	}
	if f.DateOfBirth != "" {
		fmt.Fprintf(&sb, "  birth date: %s\n", f.DateOfBirth)
	}
	if f.ExamDate != "" {
		fmt.Fprintf(&sb, "  exam date:  %s\n", f.ExamDate)
	}
	if f.IssueDate != "" {
		fmt.Fprintf(&sb, "  issue date: %s\n", f.IssueDate)
	}
	if f.IssuingOrganization != "" {
		fmt.Fprintf(&sb, "  issuer:     %s\n", f.IssuingOrganization)
	}
	if len(f.Scores) > 0 {
		keys := make([]string, 0, len(f.Scores))
		for k := range f.Scores {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(&sb, "  scores:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "    %-10s %g\n", k+":", f.Scores[k])
		}
	}
	fmt.Fprintf(&sb, "  confidence: %d (%s, quality %s)\n", f.Confidence, f.Method, out.Quality.Tier)
	return sb.String()
}

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceP("languages", "l", []string{"eng", "vie"}, "Tesseract language codes")
	cmd.Flags().Int("workers", 4, "maximum concurrent OCR passes")
	cmd.Flags().Int("threshold", 40, "confidence threshold below which escalation triggers (1-100)")
	cmd.Flags().Bool("ai", false, "enable AI recognition escalation")
	cmd.Flags().String("ai-provider", config.ProviderVision, "AI provider (vision, gemini)")
	cmd.Flags().String("ai-model", "gemini-1.5-flash", "model name for the gemini provider")
	cmd.Flags().Int("ai-timeout", 20, "AI request timeout in seconds")
	cmd.Flags().Int("upscale-min-side", 900, "upscale images whose short side is below this")
	cmd.Flags().Int("upscale-factor", 2, "upscale factor for small images (1-4)")
	cmd.Flags().Float64("contrast", 20, "contrast boost percentage for enhancement")
	cmd.Flags().Float64("brightness", 5, "brightness offset percentage for enhancement")
}

// bindExtractFlags binds all flags to viper configuration keys.
func bindExtractFlags(cmd *cobra.Command) {
	flagBindings := []struct {
		key  string
		flag string
	}{
		{"output.format", "format"},
		{"output.file", "output"},
		{"ocr.languages", "languages"},
		{"ocr.max_workers", "workers"},
		{"escalation.confidence_threshold", "threshold"},
		{"ai.enabled", "ai"},
		{"ai.provider", "ai-provider"},
		{"ai.model", "ai-model"},
		{"ai.timeout_sec", "ai-timeout"},
		{"enhancement.upscale_min_side", "upscale-min-side"},
		{"enhancement.upscale_factor", "upscale-factor"},
		{"enhancement.contrast", "contrast"},
		{"enhancement.brightness", "brightness"},
	}

	for _, binding := range flagBindings {
		if err := viper.BindPFlag(binding.key, cmd.Flags().Lookup(binding.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", binding.flag, err))
		}
	}
}

func init() {
	rootCmd.AddCommand(extractCmd)

	addExtractFlags(extractCmd)
	bindExtractFlags(extractCmd)
}

// GetExtractCommand returns the extract command for testing purposes.
func GetExtractCommand() *cobra.Command {
	return extractCmd
}
