package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/plan"
)

// LabelInfo holds the data encoded into each part label's QR code.
type LabelInfo struct {
	PartID    string  `json:"part_id"`
	Plan      string  `json:"plan"`
	Sequence  int     `json:"sequence"` // 1-based position in the cutting order
	Cuts      int     `json:"cuts"`
	Holes     int     `json:"holes"`
	Width     float64 `json:"width_mm"`
	Height    float64 `json:"height_mm"`
	X         float64 `json:"x_mm"`
	Y         float64 `json:"y_mm"`
	CutLength float64 `json:"cut_length_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF with one QR-coded label per part, in cutting
// order, laid out on Avery 5160 sheets (3 columns x 10 rows on US Letter).
func ExportLabels(path string, p *plan.Plan) error {
	labels := CollectLabelInfos(p)
	if len(labels) == 0 {
		return fmt.Errorf("no parts to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for part %d: %w", label.Sequence, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", info.Sequence, info.PartID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := fmt.Sprintf("#%d %s", info.Sequence, info.Plan)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.1f x %.1f mm", info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	cutInfo := fmt.Sprintf("%d cuts, %d holes", info.Cuts, info.Holes)
	pdf.CellFormat(textW, 3, cutInfo, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("@ (%.0f, %.0f)  %s", info.X, info.Y, shortID(info.PartID)), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a plan, one entry per
// part in cutting order.
func CollectLabelInfos(p *plan.Plan) []LabelInfo {
	if p == nil {
		return nil
	}

	var labels []LabelInfo
	for i, part := range p.Parts {
		b := part.Boundary()
		var length float64
		for _, c := range part.Cuts {
			length += c.Length()
		}
		labels = append(labels, LabelInfo{
			PartID:    part.ID,
			Plan:      p.Name,
			Sequence:  i + 1,
			Cuts:      len(part.Cuts),
			Holes:     len(part.Holes()),
			Width:     b.Width(),
			Height:    b.Height(),
			X:         b.Min.X,
			Y:         b.Min.Y,
			CutLength: length,
		})
	}
	return labels
}
