package report

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// Keys of the plot images BuildPDFReport looks for.
const (
	PlotResistanceHeatmap   = "heatmap_ri"
	PlotResistanceHistogram = "histogram_total"
)

// pdfStyler tracks the flowing Y position and the named text styles.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6,
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["metric"] = func() {
		s.pdf.SetFont("Courier", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["warning"] = func() {
		s.pdf.SetFont("Arial", "B", 10)
		s.pdf.SetTextColor(200, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := len(s.pdf.SplitLines([]byte(text), pdfContentWidth))
	s.checkAddPage(float64(max(1, lines)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width float64, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.ImageOptions(imageName, x, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// addTable draws a header row and body rows with relative column widths,
// repeating nothing across page breaks.
func (s *pdfStyler) addTable(headers []string, widthsRel []float64, rows [][]string) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}
	s.checkAddPage(s.lineHeight * math.Min(float64(len(rows))+1, 6))

	s.applyStyle("tableHeader")
	x := pdfMargin
	for i, h := range headers {
		s.pdf.SetXY(x, s.currentY)
		s.pdf.CellFormat(widths[i], s.lineHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	s.currentY += s.lineHeight

	for _, row := range rows {
		s.checkAddPage(s.lineHeight)
		s.applyStyle("tableCell")
		x = pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

// BuildPDFReport writes the rating report for s to filepath.
func BuildPDFReport(filepath string, s *Summary, plotImages map[string][]byte) error {
	pdf := renderPDF(s, plotImages)
	return pdf.OutputFileAndClose(filepath)
}

// WritePDFReport writes the rating report for s to w.
func WritePDFReport(w io.Writer, s *Summary, plotImages map[string][]byte) error {
	pdf := renderPDF(s, plotImages)
	return pdf.Output(w)
}

func renderPDF(s *Summary, plotImages map[string][]byte) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	title := "Constraint Rating Report"
	if s.Name != "" {
		title += ": " + s.Name
	}
	styler.writeParagraph(title, "h1", "C")
	styler.addSpacer(5)

	styler.writeParagraph("Assembly Rating", "h2", "L")
	styler.writeParagraph(fmt.Sprintf("Weakest Total Resistance (WTR): %.4f   (LAR: %.3f)", s.Rating.WTR, s.LARWTR), "metric", "L")
	styler.writeParagraph(fmt.Sprintf("Mean Redundancy Ratio (MRR):    %.4f", s.Rating.MRR), "metric", "L")
	styler.writeParagraph(fmt.Sprintf("Mean Total Resistance (MTR):    %.4f   (LAR: %.3f)", s.Rating.MTR, s.LARMTR), "metric", "L")
	styler.writeParagraph(fmt.Sprintf("Trade-Off Ratio (TOR):          %.4f", s.Rating.TOR), "metric", "L")
	styler.addSpacer(5)

	motionWidths := []float64{0.08, 0.08, 0.08, 0.08, 0.08, 0.08, 0.08, 0.08, 0.08, 0.1, 0.18}
	switch {
	case !s.Locked:
		styler.writeParagraph("No combination of constraints locks the body; every motion is free.", "warning", "L")
	case len(s.FreeMotions) > 0:
		styler.writeParagraph("Unconstrained Motion", "h2", "L")
		rows := make([][]string, len(s.FreeMotions))
		for i, m := range s.FreeMotions {
			rows[i] = motionCells(MotionRow{Motion: m})
		}
		styler.addTable(motionHeaders, motionWidths, rows)
	default:
		styler.writeParagraph("There is no unconstrained motion.", "normal", "L")
		styler.addSpacer(3)
		styler.writeParagraph("Weakest Constrained Motion (according to WTR)", "h2", "L")
		styler.addTable(motionHeaders, motionWidths, [][]string{motionCells(*s.Weakest)})
		styler.addSpacer(5)

		styler.writeParagraph("Constraint Contributions", "h2", "L")
		rows := make([][]string, len(s.Constraints))
		for i, c := range s.Constraints {
			rows[i] = constraintCells(c)
		}
		styler.addTable(constraintHeaders, []float64{0.1, 0.25, 0.25, 0.2, 0.2}, rows)
	}
	styler.addSpacer(5)

	styler.writeParagraph(fmt.Sprintf("Total possible combinations: %d", s.TotalCombinations), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Linearly independent combinations processed: %d", s.Processed), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Unique screw motions found: %d", s.UniqueMotions), "normal", "L")

	plotDefs := []struct {
		Key     string
		Title   string
		Caption string
		Aspect  float64
	}{
		{PlotResistanceHeatmap, "Reciprocal Resistance", "Reciprocal resistance per motion (row) and constraint (column)", 5.0 / 8.0},
		{PlotResistanceHistogram, "Total Resistance Distribution", "Histogram of total resistance over rated motions", 0.5},
	}
	for _, pDef := range plotDefs {
		imgBytes, ok := plotImages[pDef.Key]
		if !ok || len(imgBytes) == 0 {
			continue
		}
		styler.newPage()
		styler.writeParagraph(pDef.Title, "h2", "L")
		width := pdfContentWidth * 0.8
		height := math.Min(width*pDef.Aspect, styler.pageHeight-styler.currentY-2*styler.lineHeight)
		styler.addImage(imgBytes, pDef.Key, height/pDef.Aspect, height, pDef.Caption)
	}
	return pdf
}
