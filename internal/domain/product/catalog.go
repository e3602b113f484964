package product

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
)

var _ Lookup = (*Catalog)(nil)

// Catalog is the in-memory product catalog backed by a Store. Inventory is
// informational only: sales never decrement it.
type Catalog struct {
	store    Store
	products []Product
}

// NewCatalog creates an empty Catalog; call Load before use.
func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// Load reads the persisted catalog. The Store decides how to source entries
// when the local file is missing (remote seed fallback lives there).
func (c *Catalog) Load(ctx context.Context) error {
	products, err := c.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	c.products = products
	return nil
}

// Find returns the product whose name equals the given name, ignoring case.
func (c *Catalog) Find(_ context.Context, name string) (*Product, error) {
	for i := range c.products {
		if strings.EqualFold(c.products[i].Name, name) {
			p := c.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Add assigns the next identifier, appends the product, and persists.
func (c *Catalog) Add(ctx context.Context, p Product) (*Product, error) {
	if p.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	p.ID = len(c.products) + 1
	c.products = append(c.products, p)
	if err := c.store.Save(ctx, c.products); err != nil {
		return nil, errors.Wrap(err, "save catalog")
	}
	return &p, nil
}

// Update replaces the product with the same ID and persists.
func (c *Catalog) Update(ctx context.Context, p Product) error {
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	for i := range c.products {
		if c.products[i].ID == p.ID {
			c.products[i] = p
			if err := c.store.Save(ctx, c.products); err != nil {
				return errors.Wrap(err, "save catalog")
			}
			return nil
		}
	}
	return ErrNotFound
}

// Remove deletes the product with the given ID and persists.
func (c *Catalog) Remove(ctx context.Context, id int) error {
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			if err := c.store.Save(ctx, c.products); err != nil {
				return errors.Wrap(err, "save catalog")
			}
			return nil
		}
	}
	return ErrNotFound
}

// All returns the catalog in insertion order.
func (c *Catalog) All() []Product {
	return c.products
}
