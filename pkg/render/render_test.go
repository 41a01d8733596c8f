package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrview/pkg/colormap"
	"arrview/pkg/ndarray"
	"arrview/pkg/normalize"
	"arrview/pkg/viewstate"
)

func newViewState(t *testing.T, shape []int, values []float64) *viewstate.ViewState {
	t.Helper()
	arr, err := ndarray.FromFloat64s(shape, values)
	require.NoError(t, err)
	vs := viewstate.New()
	require.NoError(t, vs.SetArray(arr))
	return vs
}

func TestPlotNoArray(t *testing.T) {
	ax := &Axes{}
	err := Plot(ax, viewstate.New(), Options{})
	assert.ErrorIs(t, err, viewstate.ErrNoArray)
}

func TestPlotOriginLower(t *testing.T) {
	// Row 0 holds zeros, row 1 holds ones; with the origin at the bottom
	// the zeros land on the bottom pixel row.
	vs := newViewState(t, []int{2, 2}, []float64{0, 0, 1, 1})
	vs.VMin = normalize.Fixed(0)
	vs.VMax = normalize.Fixed(1)

	ax := &Axes{}
	require.NoError(t, Plot(ax, vs, Options{}))

	gray, _ := colormap.Get("gray")
	assert.Equal(t, gray.At(0), ax.Image.RGBAAt(0, 1), "data row 0 at image bottom")
	assert.Equal(t, gray.At(1), ax.Image.RGBAAt(0, 0), "data row 1 at image top")
}

func TestPlotMatchesNormalizationPipeline(t *testing.T) {
	values := []float64{-5, 0, 2.5, 5, 7.5, 10}
	vs := newViewState(t, []int{2, 3}, values)
	vs.VMin = normalize.Fixed(0)
	vs.VMax = normalize.Fixed(10)
	vs.Contrast = 2.0
	vs.Bias = 0.4
	vs.StretchMode = viewstate.StretchLog

	ax := &Axes{}
	require.NoError(t, Plot(ax, vs, Options{}))

	// The export path must paint exactly what the normalization snapshot
	// computes for every pixel.
	norm := vs.Normalization()
	intensities := norm.NormalizeSlice(values)
	cm, _ := colormap.Get(colormap.Resolve(vs.Colormap, vs.ReverseColormap))
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			want := cm.At(intensities[r*3+c])
			assert.Equal(t, want, ax.Image.RGBAAt(c, 1-r), "pixel (%d,%d)", r, c)
		}
	}
}

func TestPlotColormapOverride(t *testing.T) {
	vs := newViewState(t, []int{1, 2}, []float64{0, 1})
	vs.VMin = normalize.Fixed(0)
	vs.VMax = normalize.Fixed(1)

	ax := &Axes{}
	require.NoError(t, Plot(ax, vs, Options{Cmap: "inferno"}))

	inferno, _ := colormap.Get("inferno")
	assert.Equal(t, inferno.At(0), ax.Image.RGBAAt(0, 0))
	assert.Equal(t, inferno.At(1), ax.Image.RGBAAt(1, 0))
}

func TestPlotReversedColormapFromViewState(t *testing.T) {
	vs := newViewState(t, []int{1, 2}, []float64{0, 1})
	vs.VMin = normalize.Fixed(0)
	vs.VMax = normalize.Fixed(1)
	vs.Colormap = "Gray"
	vs.ReverseColormap = true

	ax := &Axes{}
	require.NoError(t, Plot(ax, vs, Options{}))

	gray, _ := colormap.Get("gray")
	assert.Equal(t, gray.At(1), ax.Image.RGBAAt(0, 0), "reversed gray starts white")
}

func TestPlotViewportLimits(t *testing.T) {
	vs := newViewState(t, []int{2, 2}, []float64{0, 1, 2, 3})
	vs.XLim = [2]float64{50, 150}
	vs.YLim = [2]float64{25, 75}

	ax := &Axes{}
	require.NoError(t, Plot(ax, vs, Options{}))
	assert.Equal(t, [2]float64{50, 150}, ax.XLim)
	assert.Equal(t, [2]float64{25, 75}, ax.YLim)
}

func TestPlotSkipsDegenerateLimits(t *testing.T) {
	vs := newViewState(t, []int{2, 2}, []float64{0, 1, 2, 3})
	vs.XLim = [2]float64{100, 100}

	ax := &Axes{XLim: [2]float64{1, 2}}
	require.NoError(t, Plot(ax, vs, Options{}))
	assert.Equal(t, [2]float64{1, 2}, ax.XLim, "degenerate limits leave axes untouched")
}

func TestPlotScalesToRequestedSize(t *testing.T) {
	vs := newViewState(t, []int{2, 2}, []float64{0, 1, 2, 3})

	ax := &Axes{}
	require.NoError(t, Plot(ax, vs, Options{Width: 8, Height: 6}))

	bounds := ax.Image.Bounds()
	assert.Equal(t, 8, bounds.Dx())
	assert.Equal(t, 6, bounds.Dy())
}

func TestPlotUsesCurrentSlice(t *testing.T) {
	values := make([]float64, 3*2*2)
	for i := range values {
		values[i] = float64(i % 4)
	}
	// Make plane 1 all-max so its pixels differ from plane 0.
	for i := 4; i < 8; i++ {
		values[i] = 3
	}
	vs := newViewState(t, []int{3, 2, 2}, values)
	vs.VMin = normalize.Fixed(0)
	vs.VMax = normalize.Fixed(3)

	ax := &Axes{}
	require.NoError(t, Plot(ax, vs, Options{}))
	plane0 := ax.Image.RGBAAt(0, 1)

	require.NoError(t, vs.SetSliceIndices([]int{1}))
	require.NoError(t, Plot(ax, vs, Options{}))
	plane1 := ax.Image.RGBAAt(0, 1)

	assert.NotEqual(t, plane0, plane1)
	gray, _ := colormap.Get("gray")
	assert.Equal(t, gray.At(1), plane1)
}

func TestSavePNG(t *testing.T) {
	vs := newViewState(t, []int{2, 2}, []float64{0, 1, 2, 3})

	ax := &Axes{}
	require.NoError(t, Plot(ax, vs, Options{}))

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(ax, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePNGWithoutPlot(t *testing.T) {
	err := SavePNG(&Axes{}, filepath.Join(t.TempDir(), "out.png"))
	assert.Error(t, err)
}
