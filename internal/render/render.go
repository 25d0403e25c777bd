// Package render produces quicklook PNGs of QA bands. Class bands draw one
// fixed color per class; pixel QA bands draw a single flag bit as a binary
// mask. Rasters are plotted line 0 at the top, matching band file order.
package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/eros-data/landsat.qa/internal/classqa"
	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/monitoring"
	"github.com/eros-data/landsat.qa/internal/pixelqa"
)

// classColors maps each class to its quicklook color. Unknown values draw
// as fill.
var classColors = map[uint8]color.RGBA{
	classqa.Clear:       {R: 0x3c, G: 0x8d, B: 0x3c, A: 0xff},
	classqa.Water:       {R: 0x1f, G: 0x4e, B: 0xb4, A: 0xff},
	classqa.CloudShadow: {R: 0x4b, G: 0x4b, B: 0x4b, A: 0xff},
	classqa.Snow:        {R: 0x6f, G: 0xd8, B: 0xe8, A: 0xff},
	classqa.Cloud:       {R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff},
	classqa.Fill:        {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
}

var maskColors = []color.Color{
	color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}, // bit clear
	color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, // bit set
}

// ClassQuicklook writes a PNG of a class QA band to path.
func ClassQuicklook(fsys fsutil.FileSystem, path, title string, data []uint8, nrows, ncols int) error {
	if len(data) != nrows*ncols {
		return fmt.Errorf("band is %d pixels but dimensions say %dx%d", len(data), nrows, ncols)
	}

	// Remap class values to ordinals so the categorical palette indexes
	// exactly, fill last.
	ordinal := make(map[uint8]float64, len(classqa.Values))
	colors := make([]color.Color, len(classqa.Values))
	for i, v := range classqa.Values {
		ordinal[v] = float64(i)
		colors[i] = classColors[v]
	}
	fillOrdinal := ordinal[classqa.Fill]

	grid := &rasterGrid{
		nrows: nrows,
		ncols: ncols,
		at: func(i int) float64 {
			if o, ok := ordinal[data[i]]; ok {
				return o
			}
			return fillOrdinal
		},
	}
	return writeHeatmap(fsys, path, title, grid, colors)
}

// BitQuicklook writes a PNG of one pixel QA flag bit as a binary mask.
func BitQuicklook(fsys fsutil.FileSystem, path, title string, data []uint16, bit, nrows, ncols int) error {
	if bit < 0 || bit >= pixelqa.NumBits {
		return fmt.Errorf("bit %d out of range 0-%d", bit, pixelqa.NumBits-1)
	}
	if len(data) != nrows*ncols {
		return fmt.Errorf("band is %d pixels but dimensions say %dx%d", len(data), nrows, ncols)
	}

	mask := uint16(1) << bit
	grid := &rasterGrid{
		nrows: nrows,
		ncols: ncols,
		at: func(i int) float64 {
			if data[i]&mask != 0 {
				return 1
			}
			return 0
		},
	}
	return writeHeatmap(fsys, path, title, grid, maskColors)
}

func writeHeatmap(fsys fsutil.FileSystem, path, title string, grid *rasterGrid, colors []color.Color) error {
	hm := plotter.NewHeatMap(grid, quicklookPalette(colors))
	hm.Min = 0
	hm.Max = float64(len(colors) - 1)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "line"
	p.Add(hm)

	// Longer raster side gets the full plot width; the other side scales
	// with the aspect ratio.
	const side = 8 * vg.Inch
	w, h := side, side
	if grid.ncols >= grid.nrows {
		h = vg.Length(float64(side) * float64(grid.nrows) / float64(grid.ncols))
	} else {
		w = vg.Length(float64(side) * float64(grid.ncols) / float64(grid.nrows))
	}

	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return fmt.Errorf("render quicklook: %v", err)
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create quicklook: %v", err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write quicklook: %v", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close quicklook: %v", err)
	}

	monitoring.Logf("wrote quicklook %s (%dx%d)", path, grid.nrows, grid.ncols)
	return nil
}

// rasterGrid adapts a row-major band to the plotter grid interface. Row 0
// is the top line, so the y axis is flipped.
type rasterGrid struct {
	nrows, ncols int
	at           func(i int) float64
}

func (g *rasterGrid) Dims() (c, r int) { return g.ncols, g.nrows }
func (g *rasterGrid) X(c int) float64  { return float64(c) }
func (g *rasterGrid) Y(r int) float64  { return float64(r) }

func (g *rasterGrid) Z(c, r int) float64 {
	return g.at((g.nrows-1-r)*g.ncols + c)
}

type quicklookPalette []color.Color

func (p quicklookPalette) Colors() []color.Color { return p }

var _ palette.Palette = quicklookPalette(nil)
