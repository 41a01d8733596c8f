package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	flagDumpOut  string
	flagDumpMeta string
)

// dumpCmd emits the current slice exactly as the viewer frontend would
// receive it: the raw little-endian pixel buffer plus a YAML metadata
// sidecar with the dtype code and image dimensions.
var dumpCmd = &cobra.Command{
	Use:   "dump <array-file>",
	Short: "Write the visible slice's pixel buffer and metadata to disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&flagConfig, "config", "arrview.yaml", "view configuration file")
	dumpCmd.Flags().StringVar(&flagIndices, "indices", "", "comma-separated leading-axis indices, e.g. 2,0")
	dumpCmd.Flags().StringVar(&flagDumpOut, "out", "slice.bin", "output buffer filename")
	dumpCmd.Flags().StringVar(&flagDumpMeta, "meta", "slice.yaml", "output metadata filename")
}

func runDump(cmd *cobra.Command, args []string) error {
	vs, _, err := loadViewState(args[0])
	if err != nil {
		return err
	}

	frame, err := vs.Frame()
	if err != nil {
		return err
	}

	if err := os.WriteFile(flagDumpOut, frame.Data, 0644); err != nil {
		return fmt.Errorf("writing buffer: %w", err)
	}

	meta, err := yaml.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(flagDumpMeta, meta, 0644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	vs.MarkPainted()

	logger.Info("dumped slice",
		zap.String("buffer", flagDumpOut),
		zap.String("meta", flagDumpMeta),
		zap.String("dtype", frame.DType),
		zap.Int("width", frame.Width),
		zap.Int("height", frame.Height))
	fmt.Printf("Dumped %dx%d %s slice to %s (+ %s)\n",
		frame.Width, frame.Height, frame.DType, flagDumpOut, flagDumpMeta)
	return nil
}
