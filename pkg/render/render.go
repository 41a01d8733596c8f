// Package render is the static export path: it paints the current slice of
// a ViewState into an image using exactly the normalization snapshot the
// interactive path would use, so the two renderings cannot diverge.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"arrview/pkg/colormap"
	"arrview/pkg/viewstate"
)

// Axes is the plotting target of an export: the painted image plus the
// viewport limits in data coordinates.
type Axes struct {
	// Image is the painted slice; allocated by Plot.
	Image *image.RGBA

	// XLim and YLim are viewport limits. Plot only overwrites them with
	// non-degenerate (min != max) limits from the view state.
	XLim [2]float64
	YLim [2]float64
}

// Options are pass-through rendering options for Plot.
type Options struct {
	// Cmap overrides the view state's colormap with a resolved name
	// (e.g. "inferno", "RdBu_r"). Empty means resolve from the view
	// state's colormap selection.
	Cmap string

	// Width and Height request an output size in pixels. Zero means the
	// slice's own dimensions. When they differ from the slice size the
	// painted image is rescaled.
	Width  int
	Height int
}

// Plot renders the current slice onto ax using the view state's
// normalization snapshot and resolved colormap. The image origin is at the
// bottom: the first data row is painted as the bottom pixel row (the FITS
// convention, not the raster one).
func Plot(ax *Axes, vs *viewstate.ViewState, opts Options) error {
	slice, err := vs.CurrentSlice()
	if err != nil {
		return fmt.Errorf("rendering slice: %w", err)
	}

	norm := vs.Normalization()
	intensities := norm.NormalizeSlice(slice.Float64s())

	name := opts.Cmap
	if name == "" {
		name = colormap.Resolve(vs.Colormap, vs.ReverseColormap)
	}
	cm, _ := colormap.Get(name)

	shape := slice.Shape()
	rows, cols := shape[0], shape[1]
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		y := rows - 1 - r // origin lower
		for c := 0; c < cols; c++ {
			img.SetRGBA(c, y, cm.At(intensities[r*cols+c]))
		}
	}

	if (opts.Width > 0 && opts.Width != cols) || (opts.Height > 0 && opts.Height != rows) {
		w, h := opts.Width, opts.Height
		if w <= 0 {
			w = cols
		}
		if h <= 0 {
			h = rows
		}
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = scaled
	}

	ax.Image = img
	if vs.XLim[0] != vs.XLim[1] {
		ax.XLim = vs.XLim
	}
	if vs.YLim[0] != vs.YLim[1] {
		ax.YLim = vs.YLim
	}
	return nil
}

// SavePNG writes the painted image to a PNG file.
func SavePNG(ax *Axes, filename string) error {
	if ax.Image == nil {
		return fmt.Errorf("nothing painted yet")
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, ax.Image)
}
