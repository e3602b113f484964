package payment

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/smontiel/partstore/internal/domain/customer"
)

// ErrNotFound is returned when no payment matches the removal criteria.
var ErrNotFound = errors.New("payment not found")

// Payment records money received from a customer. The customer is captured
// by value at registration time. Method and currency are recorded as entered
// (the historical files carry free-form labels like "Punto de venta").
type Payment struct {
	Reference string
	Customer  customer.Customer
	Amount    decimal.Decimal
	Currency  string
	Method    string
	Date      time.Time
}

// Store persists the payment ledger as one collection.
type Store interface {
	Load(ctx context.Context) ([]Payment, error)
	Save(ctx context.Context, payments []Payment) error
}

// Filter selects payments in Search. Zero-valued fields match everything.
type Filter struct {
	CustomerID string
	Date       *time.Time
	Method     string
	Currency   string
}
