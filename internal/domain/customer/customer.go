package customer

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when no customer matches the given key.
var ErrNotFound = errors.New("customer not found")

// Kind discriminates the two customer variants. The values double as the
// type tags written to the legacy wire format, so they must not change.
type Kind string

const (
	// KindIndividual is a natural person with a given and family name.
	KindIndividual Kind = "Cliente"
	// KindOrganization is a company identified by its legal name.
	KindOrganization Kind = "ClienteJuridico"
)

// Customer is a closed tagged union over the two customer kinds. Kind selects
// which name fields are meaningful; the remaining fields are shared. Invoice
// logic branches exhaustively on Kind rather than relying on dispatch.
type Customer struct {
	Kind Kind   `validate:"required,oneof=Cliente ClienteJuridico"`
	ID   string `validate:"required"`

	// Individual only.
	FirstName string `validate:"required_if=Kind Cliente"`
	LastName  string

	// Organization only.
	LegalName    string `validate:"required_if=Kind ClienteJuridico"`
	ContactName  string
	ContactPhone string
	ContactEmail string `validate:"omitempty,email"`

	Email           string `validate:"omitempty,email"`
	ShippingAddress string
	Phone           string
}

// DisplayName returns the human-facing name for the customer's kind.
func (c *Customer) DisplayName() string {
	if c.Kind == KindOrganization {
		return c.LegalName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Store persists the full customer registry as one collection.
type Store interface {
	Load(ctx context.Context) ([]Customer, error)
	Save(ctx context.Context, customers []Customer) error
}

// Lookup is the narrow read interface consumed by other domains.
type Lookup interface {
	Find(ctx context.Context, key string) (*Customer, error)
}
