package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/smontiel/partstore/internal/domain/product"
)

// IndexOutOfRangeError reports a removal index outside the ledger bounds.
// Index is zero-based; callers present it one-based.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("invoice index %d out of range (ledger holds %d)", e.Index, e.Len)
}

// Ledger owns the ordered collection of persisted invoices. It is
// single-writer, single-reader: no operation may run concurrently with
// another.
type Ledger struct {
	store    Store
	catalog  product.Lookup
	engine   *Engine
	invoices []Invoice
}

// NewLedger creates an empty Ledger; call Load before use.
func NewLedger(store Store, catalog product.Lookup, engine *Engine) *Ledger {
	return &Ledger{store: store, catalog: catalog, engine: engine}
}

// Load reconstructs the in-memory ledger from storage. Each snapshot's
// products are re-resolved by name against the live catalog and its totals
// re-derived through the engine; a snapshot with any unresolvable product is
// dropped whole with a diagnostic naming the customer. Absent or malformed
// storage yields an empty ledger, never an error past this boundary.
func (l *Ledger) Load(ctx context.Context) {
	lg := zctx.From(ctx)

	snapshots, err := l.store.Load(ctx)
	if err != nil {
		lg.Warn("Sales ledger unreadable, starting empty", zap.Error(err))
		l.invoices = nil
		return
	}

	l.invoices = make([]Invoice, 0, len(snapshots))
	for _, snap := range snapshots {
		items, ok := l.resolveLines(ctx, snap)
		if !ok {
			continue
		}

		cust := snap.Customer.Customer()
		inv, err := l.engine.CreateInvoice(&cust, items, snap.Method, snap.Currency, snap.CreditTerm, snap.IssueDate)
		if err != nil {
			lg.Warn("Dropping invoice snapshot: rebuild failed",
				zap.String("customer_id", snap.Customer.ID),
				zap.Error(err))
			continue
		}
		l.invoices = append(l.invoices, *inv)
	}
}

// resolveLines resolves every captured line against the catalog. It returns
// ok=false when any product is missing, so the snapshot is never partially
// reconstructed.
func (l *Ledger) resolveLines(ctx context.Context, snap Snapshot) ([]LineItem, bool) {
	items := make([]LineItem, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		p, err := l.catalog.Find(ctx, line.ProductName)
		if err != nil {
			zctx.From(ctx).Warn("Dropping invoice snapshot: product not found",
				zap.String("customer_id", snap.Customer.ID),
				zap.String("product", line.ProductName))
			return nil, false
		}
		items = append(items, LineItem{Product: *p, Quantity: line.Quantity})
	}
	return items, true
}

// Append adds the invoice to the ledger and persists the full collection.
// A persist failure is returned to the caller; the in-memory append is kept.
func (l *Ledger) Append(ctx context.Context, inv Invoice) error {
	l.invoices = append(l.invoices, inv)
	if err := l.store.Save(ctx, l.invoices); err != nil {
		return errors.Wrap(err, "save sales ledger")
	}
	return nil
}

// All returns the invoices in ledger order.
func (l *Ledger) All() []Invoice {
	return l.invoices
}

// FindByCustomer returns all invoices whose captured customer identifier
// equals id, in ledger order.
func (l *Ledger) FindByCustomer(id string) []Invoice {
	var out []Invoice
	for _, inv := range l.invoices {
		if inv.Customer.ID == id {
			out = append(out, inv)
		}
	}
	return out
}

// FindByDate returns all invoices issued on the given calendar day, in
// ledger order.
func (l *Ledger) FindByDate(date time.Time) []Invoice {
	want := Date(date)
	var out []Invoice
	for _, inv := range l.invoices {
		if inv.IssueDate.Equal(want) {
			out = append(out, inv)
		}
	}
	return out
}

// RemoveAt removes the invoice at the zero-based index and persists. An out
// of range index leaves the ledger unchanged.
func (l *Ledger) RemoveAt(ctx context.Context, index int) (*Invoice, error) {
	if index < 0 || index >= len(l.invoices) {
		return nil, &IndexOutOfRangeError{Index: index, Len: len(l.invoices)}
	}
	removed := l.invoices[index]
	l.invoices = append(l.invoices[:index], l.invoices[index+1:]...)
	if err := l.store.Save(ctx, l.invoices); err != nil {
		return nil, errors.Wrap(err, "save sales ledger")
	}
	return &removed, nil
}
