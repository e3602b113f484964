package customer

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrDuplicateID is returned when registering a customer whose identifier is
// already taken. Identifiers are the sole cross-reference key, so they must
// stay unique within the directory.
var ErrDuplicateID = errors.New("customer id already registered")

var _ Lookup = (*Directory)(nil)

// Directory is the in-memory customer registry backed by a Store. It is the
// single writer of its backing file; every mutation persists the full
// collection synchronously.
type Directory struct {
	store     Store
	validate  *validator.Validate
	customers []Customer
}

// NewDirectory creates an empty Directory; call Load before use.
func NewDirectory(store Store) *Directory {
	return &Directory{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads the persisted registry. A missing or unreadable file yields an
// empty directory, never an error past this boundary.
func (d *Directory) Load(ctx context.Context) {
	customers, err := d.store.Load(ctx)
	if err != nil {
		zctx.From(ctx).Warn("Customer registry unreadable, starting empty", zap.Error(err))
		d.customers = nil
		return
	}
	d.customers = customers
}

// Register validates and appends a new customer, then persists the registry.
func (d *Directory) Register(ctx context.Context, c Customer) error {
	if err := d.validate.Struct(c); err != nil {
		return errors.Wrap(err, "validate customer")
	}
	for i := range d.customers {
		if d.customers[i].ID == c.ID {
			return ErrDuplicateID
		}
	}
	d.customers = append(d.customers, c)
	if err := d.store.Save(ctx, d.customers); err != nil {
		return errors.Wrap(err, "save customers")
	}
	return nil
}

// Find returns the customer whose identifier or email matches key.
func (d *Directory) Find(_ context.Context, key string) (*Customer, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	for i := range d.customers {
		if d.customers[i].ID == key || (d.customers[i].Email != "" && d.customers[i].Email == key) {
			c := d.customers[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// Update validates and replaces the customer with the same identifier.
func (d *Directory) Update(ctx context.Context, c Customer) error {
	if err := d.validate.Struct(c); err != nil {
		return errors.Wrap(err, "validate customer")
	}
	for i := range d.customers {
		if d.customers[i].ID == c.ID {
			d.customers[i] = c
			if err := d.store.Save(ctx, d.customers); err != nil {
				return errors.Wrap(err, "save customers")
			}
			return nil
		}
	}
	return ErrNotFound
}

// Remove deletes the customer with the given identifier and persists.
func (d *Directory) Remove(ctx context.Context, id string) error {
	for i := range d.customers {
		if d.customers[i].ID == id {
			d.customers = append(d.customers[:i], d.customers[i+1:]...)
			if err := d.store.Save(ctx, d.customers); err != nil {
				return errors.Wrap(err, "save customers")
			}
			return nil
		}
	}
	return ErrNotFound
}

// All returns the registry in insertion order.
func (d *Directory) All() []Customer {
	return d.customers
}
