package shipment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Courier identifies the motorcycle courier for local delivery services.
type Courier struct {
	Name  string
	Phone string
}

// Shipment records an outbound delivery for a purchase order. Courier is nil
// unless the carrier is a motorcycle delivery service. OrderRef holds the
// purchase order number, which by convention is the customer identifier.
type Shipment struct {
	OrderRef string
	Carrier  string
	Courier  *Courier
	Cost     decimal.Decimal
	Date     time.Time
}

// Store persists the shipment ledger as one collection.
type Store interface {
	Load(ctx context.Context) ([]Shipment, error)
	Save(ctx context.Context, shipments []Shipment) error
}

// IndexOutOfRangeError reports a removal index outside the ledger bounds.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("shipment index %d out of range (ledger holds %d)", e.Index, e.Len)
}

// Ledger owns the ordered shipment collection backed by a Store.
type Ledger struct {
	store     Store
	shipments []Shipment
}

// NewLedger creates an empty Ledger; call Load before use.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Load reads the persisted shipments. Absent or malformed storage yields an
// empty ledger.
func (l *Ledger) Load(ctx context.Context) {
	shipments, err := l.store.Load(ctx)
	if err != nil {
		zctx.From(ctx).Warn("Shipment ledger unreadable, starting empty", zap.Error(err))
		l.shipments = nil
		return
	}
	l.shipments = shipments
}

// Register appends a shipment and persists.
func (l *Ledger) Register(ctx context.Context, s Shipment) error {
	l.shipments = append(l.shipments, s)
	if err := l.store.Save(ctx, l.shipments); err != nil {
		return errors.Wrap(err, "save shipments")
	}
	return nil
}

// RemoveAt removes the shipment at the zero-based index and persists. An out
// of range index leaves the ledger unchanged.
func (l *Ledger) RemoveAt(ctx context.Context, index int) (*Shipment, error) {
	if index < 0 || index >= len(l.shipments) {
		return nil, &IndexOutOfRangeError{Index: index, Len: len(l.shipments)}
	}
	removed := l.shipments[index]
	l.shipments = append(l.shipments[:index], l.shipments[index+1:]...)
	if err := l.store.Save(ctx, l.shipments); err != nil {
		return nil, errors.Wrap(err, "save shipments")
	}
	return &removed, nil
}

// Search returns shipments matching the customer identifier (against
// OrderRef) and/or calendar day. Empty criteria match everything.
func (l *Ledger) Search(customerID string, date *time.Time) []Shipment {
	var out []Shipment
	for _, s := range l.shipments {
		if customerID != "" && s.OrderRef != customerID {
			continue
		}
		if date != nil && !sameDay(s.Date, *date) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// All returns the shipments in ledger order.
func (l *Ledger) All() []Shipment {
	return l.shipments
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
