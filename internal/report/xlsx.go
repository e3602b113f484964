package report

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the full report as a workbook: one sheet per series with
// an embedded column chart, plus ranking sheets for products and customers.
func ExportXLSX(path string, data *Data, p Period) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := totalsSheet(f, "Sales", "Total sales", data.SalesTotals(p)); err != nil {
		return err
	}
	if err := totalsSheet(f, "Payments", "Total payments", data.PaymentTotals(p)); err != nil {
		return err
	}
	if err := countSheet(f, "Shipments", "Shipments", data.ShipmentCounts(p), true); err != nil {
		return err
	}
	if err := countSheet(f, "Top Products", "Units sold", data.TopProducts(10), false); err != nil {
		return err
	}
	if err := countSheet(f, "Top Customers", "Sales", data.TopCustomers(10), false); err != nil {
		return err
	}

	// The default sheet is replaced by the first report sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "delete default sheet")
	}
	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

func totalsSheet(f *excelize.File, name, valueHeader string, entries []Entry) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.Wrapf(err, "sheet %s", name)
	}
	if err := f.SetSheetRow(name, "A1", &[]any{"Period", valueHeader}); err != nil {
		return errors.Wrapf(err, "sheet %s header", name)
	}
	for i, e := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(name, cell, &[]any{e.Bucket, e.Total.InexactFloat64()}); err != nil {
			return errors.Wrapf(err, "sheet %s row %d", name, i+2)
		}
	}
	return addColumnChart(f, name, valueHeader, len(entries))
}

func countSheet(f *excelize.File, name, valueHeader string, counts []Count, chart bool) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.Wrapf(err, "sheet %s", name)
	}
	if err := f.SetSheetRow(name, "A1", &[]any{"Key", valueHeader}); err != nil {
		return errors.Wrapf(err, "sheet %s header", name)
	}
	for i, c := range counts {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(name, cell, &[]any{c.Key, c.Count}); err != nil {
			return errors.Wrapf(err, "sheet %s row %d", name, i+2)
		}
	}
	if !chart {
		return nil
	}
	return addColumnChart(f, name, valueHeader, len(counts))
}

func addColumnChart(f *excelize.File, sheet, title string, rows int) error {
	if rows == 0 {
		return nil
	}
	err := f.AddChart(sheet, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", quoteSheet(sheet)),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", quoteSheet(sheet), rows+1),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", quoteSheet(sheet), rows+1),
		}},
		Title: []excelize.RichTextRun{{Text: title}},
	})
	if err != nil {
		return errors.Wrapf(err, "chart on %s", sheet)
	}
	return nil
}

// quoteSheet wraps sheet names containing spaces for chart range formulas.
func quoteSheet(name string) string {
	for _, r := range name {
		if r == ' ' {
			return "'" + name + "'"
		}
	}
	return name
}
