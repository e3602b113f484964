// Package report computes aggregate views over the sales, payment, and
// shipment ledgers: period totals, best-selling products, and most frequent
// customers. Aggregation is read-only; the ledgers stay untouched.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/smontiel/partstore/internal/domain/payment"
	"github.com/smontiel/partstore/internal/domain/sale"
	"github.com/smontiel/partstore/internal/domain/shipment"
)

// Period selects the aggregation bucket size.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod validates a user-supplied period name.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	}
	return "", errors.Errorf("unknown period %q (want day, week, month, or year)", s)
}

// Bucket formats t's aggregation key for the period. Weeks use ISO week
// numbering.
func Bucket(t time.Time, p Period) string {
	switch p {
	case PeriodWeek:
		y, w := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case PeriodMonth:
		return t.Format("2006-01")
	case PeriodYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// Entry is one aggregation bucket with a monetary total.
type Entry struct {
	Bucket string
	Total  decimal.Decimal
}

// Count is one ranked key with an integer tally.
type Count struct {
	Key   string
	Count int
}

// Data holds the ledger contents a report runs over.
type Data struct {
	Sales     []sale.Invoice
	Payments  []payment.Payment
	Shipments []shipment.Shipment
}

// SalesTotals sums invoice grand totals per bucket, sorted by bucket.
func (d *Data) SalesTotals(p Period) []Entry {
	totals := make(map[string]decimal.Decimal)
	for _, inv := range d.Sales {
		b := Bucket(inv.IssueDate, p)
		totals[b] = totals[b].Add(inv.Totals.Total)
	}
	return sortedEntries(totals)
}

// PaymentTotals sums payment amounts per bucket, sorted by bucket.
func (d *Data) PaymentTotals(p Period) []Entry {
	totals := make(map[string]decimal.Decimal)
	for _, pay := range d.Payments {
		b := Bucket(pay.Date, p)
		totals[b] = totals[b].Add(pay.Amount)
	}
	return sortedEntries(totals)
}

// ShipmentCounts tallies shipments per bucket, sorted by bucket.
func (d *Data) ShipmentCounts(p Period) []Count {
	counts := make(map[string]int)
	for _, sh := range d.Shipments {
		counts[Bucket(sh.Date, p)]++
	}
	out := make([]Count, 0, len(counts))
	for k, n := range counts {
		out = append(out, Count{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TopProducts returns the n best-selling products by unit quantity.
func (d *Data) TopProducts(n int) []Count {
	counts := make(map[string]int)
	for _, inv := range d.Sales {
		for _, line := range inv.Lines {
			counts[line.ProductName] += line.Quantity
		}
	}
	return topN(counts, n)
}

// TopCustomers returns the n most frequent customers by sale count.
func (d *Data) TopCustomers(n int) []Count {
	counts := make(map[string]int)
	for _, inv := range d.Sales {
		counts[inv.Customer.ID]++
	}
	return topN(counts, n)
}

func sortedEntries(totals map[string]decimal.Decimal) []Entry {
	out := make([]Entry, 0, len(totals))
	for k, v := range totals {
		out = append(out, Entry{Bucket: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}

// topN ranks by descending count, breaking ties by key for stable output.
// A non-positive n yields no entries.
func topN(counts map[string]int, n int) []Count {
	if n <= 0 {
		return nil
	}
	out := make([]Count, 0, len(counts))
	for k, c := range counts {
		out = append(out, Count{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
