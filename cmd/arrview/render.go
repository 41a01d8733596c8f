package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arrview/internal/rawio"
	"arrview/pkg/config"
	"arrview/pkg/render"
	"arrview/pkg/viewstate"
)

var (
	flagConfig  string
	flagOut     string
	flagCmap    string
	flagIndices string
)

// renderCmd exports one slice of an array file as a PNG image.
var renderCmd = &cobra.Command{
	Use:   "render <array-file>",
	Short: "Render a 2D slice of an array file to a PNG image",
	Long: `Render loads an array file, selects the visible slice, and paints it
through the configured normalization and colormap. The image origin is at
the bottom (first data row at the bottom of the image).`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagConfig, "config", "arrview.yaml", "view configuration file")
	renderCmd.Flags().StringVarP(&flagOut, "out", "o", "out.png", "output PNG filename")
	renderCmd.Flags().StringVar(&flagCmap, "cmap", "", "override the resolved colormap name, e.g. inferno or RdBu_r")
	renderCmd.Flags().StringVar(&flagIndices, "indices", "", "comma-separated leading-axis indices, e.g. 2,0")
}

func loadViewState(path string) (*viewstate.ViewState, *config.Config, error) {
	shape, err := rawio.ParseShape(flagShape)
	if err != nil {
		return nil, nil, err
	}
	arr, err := rawio.ReadArray(path, flagDType, shape)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	vs := viewstate.New()
	if err := vs.SetArray(arr); err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyView(vs); err != nil {
		return nil, nil, err
	}

	if flagIndices != "" {
		indices, err := rawio.ParseIndices(flagIndices)
		if err != nil {
			return nil, nil, err
		}
		if err := vs.SetSliceIndices(indices); err != nil {
			return nil, nil, err
		}
	}
	return vs, cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	vs, cfg, err := loadViewState(args[0])
	if err != nil {
		return err
	}

	logger.Debug("rendering slice",
		zap.Ints("shape", vs.Shape()),
		zap.Ints("indices", vs.SliceIndices()),
		zap.String("stretch", string(vs.StretchMode)))

	ax := &render.Axes{}
	opts := render.Options{
		Cmap:   flagCmap,
		Width:  cfg.Output.Width,
		Height: cfg.Output.Height,
	}
	if err := render.Plot(ax, vs, opts); err != nil {
		return err
	}
	vs.MarkPainted()

	if err := render.SavePNG(ax, flagOut); err != nil {
		return err
	}

	bounds := ax.Image.Bounds()
	logger.Info("rendered slice",
		zap.String("out", flagOut),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))
	fmt.Printf("Rendered %s (%dx%d) to %s\n", args[0], bounds.Dx(), bounds.Dy(), flagOut)
	return nil
}
