// Package commands implements the CLI commands for txtai.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "txtai",
	Short: "Extract Markdown-formatted text from documents and web pages",
	Long: `Txtai extracts normalized text from local files, URLs and raw markup.

HTML is transformed to Markdown that preserves document structure:
headings, lists, tables, code blocks and quotes. Binary formats (PDF,
Word, and others) convert through an Apache Tika service when one is
reachable. Output can be split into sentences, lines, paragraphs or
sections.

Examples:
  # Extract text from a web page
  txtai extract "https://example.com/article"

  # Split a local document into paragraphs
  txtai extract --paragraphs document.pdf

  # Section-aware extraction as JSON
  txtai extract --sections --format json report.pdf

  # Skip Tika negotiation for plain HTML work
  txtai extract --no-tika page.html`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.txtai.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".txtai")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("TXTAI")
	viper.AutomaticEnv()

	// The conversion service URL is commonly set through TXTAI_TIKA.
	_ = viper.BindEnv("tika_url", "TXTAI_TIKA")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
