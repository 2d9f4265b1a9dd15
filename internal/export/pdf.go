// Package export writes cut plans to files: a PDF drawing with a summary,
// sheets of QR-coded part labels and a spreadsheet cut report.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/plan"
)

// partColor represents an RGB color for a part.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// pageTransform maps drawing coordinates (Y up) onto the page (Y down).
type pageTransform struct {
	bounds           geom.Boundary
	scale            float64
	offsetX, offsetY float64
}

func (t pageTransform) apply(p geom.Point) (float64, float64) {
	return t.offsetX + (p.X-t.bounds.Min.X)*t.scale, t.offsetY + (t.bounds.Max.Y-p.Y)*t.scale
}

// ExportPDF writes the plan drawing on the first page, followed by a summary
// page with per-part statistics and the settings used.
func ExportPDF(path string, p *plan.Plan, settings model.Settings) error {
	if p == nil || len(p.Parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, p)

	pdf.AddPage()
	renderSummaryPage(pdf, p, settings)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws every cut, lead and rapid of the plan.
func renderPlanPage(pdf *fpdf.Fpdf, p *plan.Plan) {
	b := p.Boundary().Extend(p.Origin)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f mm)", p.Name, b.Width(), b.Height())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Cuts: %d | Cut length: %.0f mm | Rapid length: %.0f mm",
		len(p.Parts), len(p.Cuts()), p.CutLength(), p.RapidLength())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/math.Max(b.Width(), 1), drawHeight/math.Max(b.Height(), 1))
	canvasW := b.Width() * scale
	canvasH := b.Height() * scale

	t := pageTransform{
		bounds:  b,
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
	}

	// Largest shells first so islands stay visible on top of their surrounds.
	colors := make(map[*plan.Part]partColor, len(p.Parts))
	for i, part := range p.Parts {
		colors[part] = partColors[i%len(partColors)]
	}
	byArea := append([]*plan.Part(nil), p.Parts...)
	sort.SliceStable(byArea, func(i, j int) bool {
		return byArea[i].Shell().Area() > byArea[j].Shell().Area()
	})
	for _, part := range byArea {
		drawPart(pdf, t, part, colors[part])
	}

	drawRapids(pdf, t, p)
	drawCutNumbers(pdf, t, p)
	drawDimensionAnnotations(pdf, b, t.offsetX, t.offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, p, t.offsetY+canvasH+5)
}

// drawPart fills the shell, punches the holes and strokes the leads.
func drawPart(pdf *fpdf.Fpdf, t pageTransform, part *plan.Part, col partColor) {
	shell := part.Shell()
	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(30, 30, 30)

	if shell.IsClosed() {
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Polygon(pagePoints(t, shell.Path), "FD")
	} else {
		pdf.SetDrawColor(col.R, col.G, col.B)
		drawPolyline(pdf, t, shell.Path.Sample(sampleCount(shell.Path)))
	}

	for _, hole := range part.Holes() {
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetFillColor(255, 255, 255)
		pdf.Polygon(pagePoints(t, hole.Path), "FD")
	}

	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.2)
	for _, c := range part.Cuts {
		for _, lead := range []*plan.Lead{c.LeadIn, c.LeadOut} {
			if lead != nil && lead.Shape != nil {
				drawPolyline(pdf, t, lead.Shape.Sample(16))
			}
		}
	}
}

// drawRapids draws the travel moves as dashed lines.
func drawRapids(pdf *fpdf.Fpdf, t pageTransform, p *plan.Plan) {
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.15)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	for _, c := range p.Cuts() {
		if c.RapidIn == nil {
			continue
		}
		x1, y1 := t.apply(c.RapidIn.Start)
		x2, y2 := t.apply(c.RapidIn.End)
		pdf.Line(x1, y1, x2, y2)
	}
	pdf.SetDashPattern([]float64{}, 0)

	ox, oy := t.apply(p.Origin)
	pdf.SetFillColor(0, 0, 0)
	pdf.Circle(ox, oy, 0.8, "F")
}

// drawCutNumbers marks each cut's start with its position in the sequence.
func drawCutNumbers(pdf *fpdf.Fpdf, t pageTransform, p *plan.Plan) {
	pdf.SetFont("Helvetica", "", 5)
	pdf.SetTextColor(0, 0, 0)
	for i, c := range p.Cuts() {
		x, y := t.apply(c.StartPoint())
		pdf.Text(x+0.5, y-0.5, fmt.Sprintf("%d", i+1))
	}
}

func pagePoints(t pageTransform, shape *geom.Polyshape) []fpdf.PointType {
	pts := shape.Sample(sampleCount(shape))
	out := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		x, y := t.apply(p)
		out[i] = fpdf.PointType{X: x, Y: y}
	}
	return out
}

func drawPolyline(pdf *fpdf.Fpdf, t pageTransform, pts []geom.Point) {
	for i := 1; i < len(pts); i++ {
		x1, y1 := t.apply(pts[i-1])
		x2, y2 := t.apply(pts[i])
		pdf.Line(x1, y1, x2, y2)
	}
}

// sampleCount picks roughly one sample per millimetre of path, bounded.
func sampleCount(shape *geom.Polyshape) int {
	n := int(shape.Length())
	switch {
	case n < 16:
		return 16
	case n > 400:
		return 400
	default:
		return n
	}
}

// drawDimensionAnnotations adds width and height labels outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, b geom.Boundary, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", b.Width())
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", b.Height())
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a compact legend of parts at the bottom of the page.
func drawPartsLegend(pdf *fpdf.Fpdf, p *plan.Plan, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, part := range p.Parts {
		col := partColors[i%len(partColors)]
		b := part.Boundary()
		label := fmt.Sprintf("#%d (%.0fx%.0f)", i+1, b.Width(), b.Height())
		if n := len(part.Holes()); n > 0 {
			label += fmt.Sprintf(" %dH", n)
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > pageHeight-marginBottom {
			return
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, p *plan.Plan, settings model.Settings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Parts", fmt.Sprintf("%d", len(p.Parts))},
		{"Cuts", fmt.Sprintf("%d", len(p.Cuts()))},
		{"Holes", fmt.Sprintf("%d", countHoles(p))},
		{"Cut Length", fmt.Sprintf("%.1f mm", p.CutLength())},
		{"Rapid Length", fmt.Sprintf("%.1f mm", p.RapidLength())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Part Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 45, 25, 25, 60, 45, 47}
	headers := []string{"Part", "ID", "Cuts", "Holes", "Size", "Cut Length", "Start"}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	for i, part := range p.Parts {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
			drawHeader()
		}

		b := part.Boundary()
		var length float64
		for _, c := range part.Cuts {
			length += c.Length()
		}
		start := part.StartPoint().Round(settings.DecimalPrecision)
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			shortID(part.ID),
			fmt.Sprintf("%d", len(part.Cuts)),
			fmt.Sprintf("%d", len(part.Holes())),
			fmt.Sprintf("%.1f x %.1f mm", b.Width(), b.Height()),
			fmt.Sprintf("%.1f mm", length),
			fmt.Sprintf("(%g, %g)", start.X, start.Y),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if y > pageHeight-marginBottom-50 {
		pdf.AddPage()
		y = marginTop
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cut Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Kerf Width", fmt.Sprintf("%.2f mm", settings.KerfWidth)},
		{"Kerf Mode", string(settings.KerfMode)},
		{"Lead Type", string(settings.LeadType)},
		{"Lead Length", fmt.Sprintf("%.1f mm", settings.LeadLength)},
		{"Coincidence Tolerance", fmt.Sprintf("%g mm", settings.CoincidenceTolerance)},
		{"Origin", fmt.Sprintf("(%g, %g)", settings.Origin.X, settings.Origin.Y)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by MetalHeadCAM", "", 0, "C", false, 0, "")
}

// countHoles returns the number of hole cuts across all parts.
func countHoles(p *plan.Plan) int {
	total := 0
	for _, part := range p.Parts {
		total += len(part.Holes())
	}
	return total
}

// shortID trims a UUID to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
