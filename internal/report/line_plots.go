package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// CreateResistanceHistogram bins the total resistance of every rated motion.
// A free assembly has nothing worth binning and returns ErrNoData.
func CreateResistanceHistogram(rowSums []float64, wtr float64) ([]byte, error) {
	if len(rowSums) == 0 || wtr == 0 {
		return nil, fmt.Errorf("resistance histogram: %w", ErrNoData)
	}
	bins := max(1, int(float64(len(rowSums))*math.Sqrt2))

	p := plot.New()
	p.Title.Text = "Total Resistance of Rated Motions"
	p.X.Label.Text = "Total Resistance Value"
	p.Y.Label.Text = "Number of motions"
	p.Add(plotter.NewGrid())

	h, err := plotter.NewHist(plotter.Values(rowSums), bins)
	if err != nil {
		return nil, fmt.Errorf("failed to build histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	p.Add(h)

	weakest, err := wtrMarker(wtr, maxWeight(h))
	if err != nil {
		return nil, err
	}
	p.Add(weakest)
	p.Legend.Add(fmt.Sprintf("WTR = %.4f", wtr), weakest)
	p.Legend.Top = true

	return renderPNG(p, vg.Points(600), vg.Points(300))
}

// wtrMarker is the dashed vertical line drawn at the WTR, top high.
func wtrMarker(wtr, top float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: wtr, Y: 0}, {X: wtr, Y: top}})
	if err != nil {
		return nil, fmt.Errorf("failed to build WTR marker: %w", err)
	}
	l.Color = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}
	l.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	return l, nil
}

func maxWeight(h *plotter.Histogram) float64 {
	m := 0.0
	for _, b := range h.Bins {
		m = math.Max(m, b.Weight)
	}
	return m
}
