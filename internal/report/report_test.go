package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smontiel/partstore/internal/domain/payment"
	"github.com/smontiel/partstore/internal/domain/sale"
	"github.com/smontiel/partstore/internal/domain/shipment"
)

// --- Helpers ---

func invoice(customerID string, total string, day time.Time, lines ...sale.InvoiceLine) sale.Invoice {
	return sale.Invoice{
		Customer:  sale.CustomerRef{Kind: "Cliente", ID: customerID},
		Lines:     lines,
		IssueDate: day,
		Totals:    sale.Totals{Total: decimal.RequireFromString(total)},
	}
}

// --- Tests ---

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "year"} {
		p, err := ParsePeriod(valid)
		require.NoError(t, err)
		assert.Equal(t, Period(valid), p)
	}

	_, err := ParsePeriod("fortnight")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fortnight")
}

func TestBucket(t *testing.T) {
	// A Thursday that falls in ISO week 1 of the following year.
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-01", Bucket(d, PeriodDay))
	assert.Equal(t, "2026-W01", Bucket(d, PeriodWeek))
	assert.Equal(t, "2026-01", Bucket(d, PeriodMonth))
	assert.Equal(t, "2026", Bucket(d, PeriodYear))

	// December 29, 2025 belongs to ISO week 1 of 2026.
	assert.Equal(t, "2026-W01", Bucket(time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), PeriodWeek))
}

func TestSalesTotals(t *testing.T) {
	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	jan11 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	d := &Data{Sales: []sale.Invoice{
		invoice("V-1", "100", jan10),
		invoice("V-2", "50", jan11),
		invoice("V-1", "25", feb1),
	}}

	byMonth := d.SalesTotals(PeriodMonth)
	require.Len(t, byMonth, 2)
	assert.Equal(t, "2024-01", byMonth[0].Bucket)
	assert.True(t, decimal.RequireFromString("150").Equal(byMonth[0].Total))
	assert.Equal(t, "2024-02", byMonth[1].Bucket)

	byDay := d.SalesTotals(PeriodDay)
	require.Len(t, byDay, 3)
	assert.Equal(t, "2024-01-10", byDay[0].Bucket)
}

func TestPaymentTotals(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d := &Data{Payments: []payment.Payment{
		{Amount: decimal.RequireFromString("10.5"), Date: jan},
		{Amount: decimal.RequireFromString("4.5"), Date: jan},
	}}

	byYear := d.PaymentTotals(PeriodYear)
	require.Len(t, byYear, 1)
	assert.Equal(t, "2024", byYear[0].Bucket)
	assert.True(t, decimal.RequireFromString("15").Equal(byYear[0].Total))
}

func TestShipmentCounts(t *testing.T) {
	d := &Data{Shipments: []shipment.Shipment{
		{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}}

	byMonth := d.ShipmentCounts(PeriodMonth)
	require.Len(t, byMonth, 2)
	assert.Equal(t, Count{Key: "2024-03", Count: 2}, byMonth[0])
	assert.Equal(t, Count{Key: "2024-04", Count: 1}, byMonth[1])
}

func TestTopProducts(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d := &Data{Sales: []sale.Invoice{
		invoice("V-1", "0", day,
			sale.InvoiceLine{ProductName: "Oil", Quantity: 5},
			sale.InvoiceLine{ProductName: "Filter", Quantity: 2}),
		invoice("V-2", "0", day,
			sale.InvoiceLine{ProductName: "Filter", Quantity: 4},
			sale.InvoiceLine{ProductName: "Wiper", Quantity: 1}),
	}}

	top := d.TopProducts(2)
	require.Len(t, top, 2)
	assert.Equal(t, Count{Key: "Filter", Count: 6}, top[0])
	assert.Equal(t, Count{Key: "Oil", Count: 5}, top[1])
}

func TestTopN_NonPositiveCount(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d := &Data{Sales: []sale.Invoice{
		invoice("V-1", "0", day, sale.InvoiceLine{ProductName: "Oil", Quantity: 5}),
	}}

	// Counts come straight from user input; they must never slice below zero.
	assert.Empty(t, d.TopProducts(-1))
	assert.Empty(t, d.TopProducts(0))
	assert.Empty(t, d.TopCustomers(-3))
}

func TestTopCustomers_TieBreaksByKey(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d := &Data{Sales: []sale.Invoice{
		invoice("V-2", "0", day),
		invoice("V-1", "0", day),
	}}

	top := d.TopCustomers(5)
	require.Len(t, top, 2)
	assert.Equal(t, "V-1", top[0].Key)
	assert.Equal(t, "V-2", top[1].Key)
}
