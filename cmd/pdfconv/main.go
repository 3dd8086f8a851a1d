// Package main is the pdfconv command line tool: it runs the same
// conversions as the web service against local files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vovarama1992/pdf_convert/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pdfconv",
	Short: "Convert PDF files to Word, images, PowerPoint or Excel, or merge them",
	Long: `pdfconv converts local PDF files with the engines configured for the
web service (RASTER_ENGINE, WORD_ENGINE, OCR_ENGINE and friends, read from
the environment or a .env file). Each subcommand writes its result into the
output directory.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", ".", "directory the result is written to")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log engine activity to stderr")
}

func loadConfig() *config.Config {
	_ = godotenv.Load()
	return config.Load()
}

func newLogger(cmd *cobra.Command) *zap.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	return zap.NewNop()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
