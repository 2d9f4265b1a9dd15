package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/engine"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/plan"
)

// Sheet names in the cut report workbook.
const (
	SheetCuts    = "Cuts"
	SheetSummary = "Summary"
	SheetTravel  = "Travel"
)

var cutHeaders = []interface{}{
	"Order", "Part", "Cut ID", "Role", "Closed", "Orientation",
	"Start X", "Start Y", "End X", "End Y", "Length", "Area", "Rapid In",
}

// ExportReport writes a workbook with one row per cut in cutting order, a
// summary sheet, and a comparison of tour settings over the part order.
func ExportReport(path string, p *plan.Plan, settings model.Settings) error {
	if p == nil || len(p.Parts) == 0 {
		return fmt.Errorf("no parts to report")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCuts); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetSummary, SheetTravel} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeCutsSheet(f, p, settings.DecimalPrecision, bold); err != nil {
		return err
	}
	if err := writeSummarySheet(f, p, settings, bold); err != nil {
		return err
	}
	if err := writeTravelSheet(f, p, settings, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func writeCutsSheet(f *excelize.File, p *plan.Plan, precision int, bold int) error {
	if err := writeHeader(f, SheetCuts, cutHeaders, bold); err != nil {
		return err
	}

	row := 2
	for partIdx, part := range p.Parts {
		for _, c := range part.Cuts {
			role := "Shell"
			switch {
			case !c.IsClosed():
				role = "Open"
			case c.Hole:
				role = "Hole"
			}
			start := c.StartPoint().Round(precision)
			end := c.EndPoint().Round(precision)
			var rapid float64
			if c.RapidIn != nil {
				rapid = c.RapidIn.Length()
			}

			values := []interface{}{
				row - 1, partIdx + 1, c.ID, role, c.IsClosed(), c.Orientation.String(),
				start.X, start.Y, end.X, end.Y,
				round(c.Length(), precision), round(c.Area(), precision), round(rapid, precision),
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(SheetCuts, cell, &values); err != nil {
				return fmt.Errorf("write cut row %d: %w", row, err)
			}
			row++
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, p *plan.Plan, settings model.Settings, bold int) error {
	b := p.Boundary()
	rows := [][]interface{}{
		{"Plan", p.Name},
		{"Parts", len(p.Parts)},
		{"Cuts", len(p.Cuts())},
		{"Holes", countHoles(p)},
		{"Cut Length", round(p.CutLength(), settings.DecimalPrecision)},
		{"Rapid Length", round(p.RapidLength(), settings.DecimalPrecision)},
		{"Width", round(b.Width(), settings.DecimalPrecision)},
		{"Height", round(b.Height(), settings.DecimalPrecision)},
		{"Kerf Width", settings.KerfWidth},
		{"Kerf Mode", string(settings.KerfMode)},
		{"Lead Type", string(settings.LeadType)},
		{"Lead Length", settings.LeadLength},
	}

	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &values); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), bold)
}

// writeTravelSheet solves the part order once per default scenario, anchored
// at the plan origin like the plan itself.
func writeTravelSheet(f *excelize.File, p *plan.Plan, settings model.Settings, bold int) error {
	if err := writeHeader(f, SheetTravel, []interface{}{"Scenario", "Rapid Length", "Saving %"}, bold); err != nil {
		return err
	}

	points := make([]geom.Point, len(p.Parts))
	for i, part := range p.Parts {
		points[i] = part.Shell().StartPoint()
	}
	origin := p.Origin

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings.Tour), points, &origin)
	for i, r := range results {
		values := []interface{}{
			r.Scenario.Name,
			round(r.Length, settings.DecimalPrecision),
			round(r.Saving, 1),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetTravel, cell, &values); err != nil {
			return fmt.Errorf("write travel row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []interface{}, bold int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, bold)
}

func round(v float64, precision int) float64 {
	return geom.Point{X: v}.Round(precision).X
}
