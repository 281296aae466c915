package report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// resistanceGrid lays a reciprocal resistance table out for plotter.HeatMap:
// X is the constraint column, Y the motion row.
type resistanceGrid struct {
	ri [][]float64
}

func (g resistanceGrid) Dims() (c, r int)   { return len(g.ri[0]), len(g.ri) }
func (g resistanceGrid) Z(c, r int) float64 { return g.ri[r][c] }
func (g resistanceGrid) X(c int) float64    { return float64(c + 1) }
func (g resistanceGrid) Y(r int) float64    { return float64(r + 1) }

// CreateResistanceHeatmap renders ri (motions by constraints) as a PNG heat
// map. Cells that resist nothing are drawn in the lowest palette color.
func CreateResistanceHeatmap(ri [][]float64, plotTitle string) ([]byte, error) {
	if len(ri) == 0 || len(ri[0]) == 0 {
		return nil, fmt.Errorf("resistance heatmap: %w", ErrNoData)
	}
	grid := resistanceGrid{ri: ri}
	cols, rows := grid.Dims()

	p := plot.New()
	p.Title.Text = plotTitle
	p.X.Label.Text = "Constraint"
	p.Y.Label.Text = "Motion"

	hm := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	hm.NaN = color.Gray{Y: 200}
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	p.X.Tick.Marker = plot.ConstantTicks(indexTicks(cols))
	p.Y.Tick.Marker = plot.ConstantTicks(indexTicks(rows))
	p.X.Min, p.X.Max = 0.5, float64(cols)+0.5
	p.Y.Min, p.Y.Max = 0.5, float64(rows)+0.5

	return renderPNG(p, vg.Points(800), vg.Points(500))
}

// indexTicks labels 1..n, thinned to about ten labels.
func indexTicks(n int) []plot.Tick {
	step := 1
	if n > 10 {
		step = (n + 9) / 10
	}
	ticks := make([]plot.Tick, 0, n/step+1)
	for i := 1; i <= n; i += step {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	return ticks
}

func renderPNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
