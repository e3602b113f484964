package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// ErrNegativePrice rejects catalog entries with a negative unit price.
var ErrNegativePrice = errors.New("price must not be negative")

// Product represents a catalog item available for sale. Name is the lookup
// key used by invoices; matching is case-insensitive.
type Product struct {
	ID                 int
	Name               string
	Description        string
	Price              decimal.Decimal
	Category           string
	Inventory          int
	CompatibleVehicles []string
}

// Store persists the full catalog as one collection.
type Store interface {
	Load(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, products []Product) error
}

// Lookup is the narrow read interface consumed by the sales core. The match
// on name is case-insensitive and exact.
type Lookup interface {
	Find(ctx context.Context, name string) (*Product, error)
}
