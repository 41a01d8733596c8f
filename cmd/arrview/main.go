// Command arrview renders N-dimensional array files as images and inspects
// their contents, using the same normalization pipeline as the interactive
// viewer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger

	verbose bool

	// Array input flags shared by all subcommands.
	flagDType string
	flagShape string
)

var rootCmd = &cobra.Command{
	Use:   "arrview",
	Short: "View N-dimensional array files as images",
	Long: `arrview loads headerless binary array files and renders 2D slices of
them with DS9-style contrast/bias normalization and linear, log, or
symmetric stretch.

Array files hold little-endian row-major element data; dtype and shape
are given on the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDType, "dtype", "f64", "element type code (i8 u8 i16 u16 i32 u32 i64 u64 f32 f64)")
	rootCmd.PersistentFlags().StringVar(&flagShape, "shape", "", "comma-separated axis lengths, e.g. 5,100,200")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
