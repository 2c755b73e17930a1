package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SerjaoM/txtai/internal/logger"
	"github.com/SerjaoM/txtai/internal/output"
	"github.com/SerjaoM/txtai/pkg/loader"
	"github.com/SerjaoM/txtai/pkg/textractor"
)

// extractResult wraps extracted segments with their source for structured
// output formats.
type extractResult struct {
	Source   string   `json:"source" yaml:"source"`
	Segments []string `json:"segments" yaml:"segments"`
}

var extractCmd = &cobra.Command{
	Use:   "extract [inputs...]",
	Short: "Extract text from files, URLs or raw markup",
	Long: `Extract normalized Markdown text from one or more inputs.

Each input may be a local file path, a file:// or http(s) URL, or raw
markup passed directly on the command line. Binary documents convert
through a Tika service when one answers at the configured URL.

Examples:
  # Single page to stdout
  txtai extract "https://example.com/article"

  # Paragraphs from a PDF, one JSON document per input
  txtai extract --paragraphs --format json paper.pdf

  # Sentence tokenization with short fragments dropped
  txtai extract --sentences --minlength 20 notes.html

  # Render JavaScript before extraction
  txtai extract --fetch-mode dynamic "https://example.com/app"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	// Tokenization settings
	flags.Bool("sentences", false, "split output into sentences")
	flags.Bool("lines", false, "split output into lines")
	flags.Bool("paragraphs", false, "split output into paragraphs")
	flags.Bool("sections", false, "split output into sections")
	flags.Int("minlength", 0, "drop segments shorter than this many characters")
	flags.Bool("join", false, "rejoin split segments into a single string")
	flags.Bool("no-clean", false, "disable whitespace cleaning")

	// Conversion settings
	flags.String("tika-url", "", "Tika conversion service URL (default $TXTAI_TIKA or http://localhost:9998)")
	flags.Bool("no-tika", false, "skip conversion service negotiation")
	flags.Bool("require-tika", false, "fail when the conversion service is unreachable")

	// Fetch settings
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.StringSlice("header", nil, "request header as key=value (can be repeated)")
	flags.String("max-content-size", "", "max input content size (e.g., 100KB, 1MB, empty=unlimited)")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "text", "output format: text, json, jsonl, yaml")

	// Bind to viper
	_ = viper.BindPFlag("tika_url", flags.Lookup("tika-url"))
	_ = viper.BindPFlag("fetch_mode", flags.Lookup("fetch-mode"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	// Initialize logger based on flags
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Debug("extract command starting", "inputs", len(args))

	opts, err := buildOptions(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	tx, err := textractor.New(opts...)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer func() { _ = tx.Close() }()
	logger.Debug("pipeline created", "backend", tx.Backend())

	if noTika, _ := cmd.Flags().GetBool("no-tika"); !noTika && tx.Backend() == loader.BackendPlainFetch {
		logInfo("conversion service unavailable, binary formats will not convert")
	}

	// Setup output
	outFile := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		outFile = f
	}

	formatStr, _ := cmd.Flags().GetString("format")
	writer, err := output.NewWriter(outFile, output.Format(formatStr))
	if err != nil {
		logger.Error("failed to create output writer", "format", formatStr, "error", err)
		return err
	}

	errorCount := 0
	for _, input := range args {
		segments, err := tx.Segments(ctx, input)
		if err != nil {
			logger.Error("extraction failed", "input", describeInput(input), "error", err)
			errorCount++
			continue
		}

		var out any
		switch output.Format(formatStr) {
		case output.FormatText:
			if len(segments) == 1 {
				out = segments[0]
			} else {
				out = segments
			}
		default:
			out = extractResult{Source: describeInput(input), Segments: segments}
		}

		if err := writer.Write(out); err != nil {
			logger.Error("failed to write output", "error", err)
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	logger.Debug("extraction complete", "inputs", len(args), "errors", errorCount)
	if errorCount == len(args) {
		return fmt.Errorf("all %d inputs failed", len(args))
	}
	return nil
}

// buildOptions maps CLI flags onto pipeline options.
func buildOptions(cmd *cobra.Command) ([]textractor.Option, error) {
	flags := cmd.Flags()
	var opts []textractor.Option

	if v, _ := flags.GetBool("sentences"); v {
		opts = append(opts, textractor.WithSentences())
	}
	if v, _ := flags.GetBool("lines"); v {
		opts = append(opts, textractor.WithLines())
	}
	if v, _ := flags.GetBool("paragraphs"); v {
		opts = append(opts, textractor.WithParagraphs())
	}
	if v, _ := flags.GetBool("sections"); v {
		opts = append(opts, textractor.WithSections())
	}
	if v, _ := flags.GetInt("minlength"); v > 0 {
		opts = append(opts, textractor.WithMinLength(v))
	}
	if v, _ := flags.GetBool("join"); v {
		opts = append(opts, textractor.WithJoin())
	}
	if v, _ := flags.GetBool("no-clean"); v {
		opts = append(opts, textractor.WithCleanText(false))
	}

	if v := viper.GetString("tika_url"); v != "" {
		opts = append(opts, textractor.WithConversionURL(v))
	}
	if v, _ := flags.GetBool("no-tika"); v {
		opts = append(opts, textractor.WithoutConversion())
	}
	if v, _ := flags.GetBool("require-tika"); v {
		opts = append(opts, textractor.WithRequireConversion())
	}

	switch mode := viper.GetString("fetch_mode"); mode {
	case "static", "":
	case "dynamic":
		opts = append(opts, textractor.WithFetchMode(loader.FetchModeDynamic))
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s (use 'static' or 'dynamic')", mode)
	}

	if timeout, _ := flags.GetDuration("timeout"); timeout > 0 {
		opts = append(opts, textractor.WithTimeout(timeout))
	}

	if pairs, _ := flags.GetStringSlice("header"); len(pairs) > 0 {
		headers := make(map[string]string, len(pairs))
		for _, pair := range pairs {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid header %q (use key=value)", pair)
			}
			headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		opts = append(opts, textractor.WithHeaders(headers))
	}

	// Max content size (empty or 0 means unlimited)
	if sizeStr, _ := flags.GetString("max-content-size"); strings.TrimSpace(sizeStr) != "" && sizeStr != "0" {
		size, err := humanize.ParseBytes(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid max-content-size %q: %w", sizeStr, err)
		}
		opts = append(opts, textractor.WithMaxContentSize(int64(size))) //#nosec G115 -- sizes fit int64
	}

	return opts, nil
}

// describeInput shortens raw markup inputs so logs and structured output
// stay readable.
func describeInput(input string) string {
	if strings.ContainsAny(input, "<>\n") {
		if len(input) > 40 {
			return input[:40] + "..."
		}
	}
	return input
}
