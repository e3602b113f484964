package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/smontiel/partstore/internal/domain/payment"
	"github.com/smontiel/partstore/internal/domain/sale"
)

func TestExportXLSX(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	data := &Data{
		Sales: []sale.Invoice{
			invoice("V-1", "150.50", day, sale.InvoiceLine{ProductName: "Oil", Quantity: 3}),
		},
		Payments: []payment.Payment{
			{Amount: decimal.RequireFromString("99"), Date: day},
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ExportXLSX(path, data, PeriodMonth))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	names := f.GetSheetList()
	assert.ElementsMatch(t,
		[]string{"Sales", "Payments", "Shipments", "Top Products", "Top Customers"},
		names)

	bucket, err := f.GetCellValue("Sales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", bucket)
	total, err := f.GetCellValue("Sales", "B2")
	require.NoError(t, err)
	assert.Equal(t, "150.5", total)

	product, err := f.GetCellValue("Top Products", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Oil", product)
}

func TestExportXLSX_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ExportXLSX(path, &Data{}, PeriodDay))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 5)
}
