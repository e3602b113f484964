package payment

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ledger owns the ordered payment collection backed by a Store.
type Ledger struct {
	store    Store
	payments []Payment
}

// NewLedger creates an empty Ledger; call Load before use.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Load reads the persisted payments. Absent or malformed storage yields an
// empty ledger.
func (l *Ledger) Load(ctx context.Context) {
	payments, err := l.store.Load(ctx)
	if err != nil {
		zctx.From(ctx).Warn("Payment ledger unreadable, starting empty", zap.Error(err))
		l.payments = nil
		return
	}
	l.payments = payments
}

// Register appends a payment and persists. A missing reference is assigned.
func (l *Ledger) Register(ctx context.Context, p Payment) error {
	if p.Reference == "" {
		p.Reference = uuid.NewString()
	}
	l.payments = append(l.payments, p)
	if err := l.store.Save(ctx, l.payments); err != nil {
		return errors.Wrap(err, "save payments")
	}
	return nil
}

// RemoveMatching deletes the first payment with the given date and amount.
func (l *Ledger) RemoveMatching(ctx context.Context, date time.Time, amount decimal.Decimal) (*Payment, error) {
	for i, p := range l.payments {
		if sameDay(p.Date, date) && p.Amount.Equal(amount) {
			removed := p
			l.payments = append(l.payments[:i], l.payments[i+1:]...)
			if err := l.store.Save(ctx, l.payments); err != nil {
				return nil, errors.Wrap(err, "save payments")
			}
			return &removed, nil
		}
	}
	return nil, ErrNotFound
}

// Search returns all payments matching the filter, in ledger order.
func (l *Ledger) Search(f Filter) []Payment {
	var out []Payment
	for _, p := range l.payments {
		if f.CustomerID != "" && p.Customer.ID != f.CustomerID {
			continue
		}
		if f.Date != nil && !sameDay(p.Date, *f.Date) {
			continue
		}
		if f.Method != "" && !strings.EqualFold(p.Method, f.Method) {
			continue
		}
		if f.Currency != "" && !strings.EqualFold(p.Currency, f.Currency) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// All returns the payments in ledger order.
func (l *Ledger) All() []Payment {
	return l.payments
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
