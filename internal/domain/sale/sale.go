package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smontiel/partstore/internal/domain/customer"
	"github.com/smontiel/partstore/internal/domain/product"
)

// Currency distinguishes local and foreign tender. The values are the legacy
// wire strings and must not change.
type Currency string

const (
	CurrencyLocal   Currency = "bolivares"
	CurrencyForeign Currency = "divisas"
)

// PaymentMethod is the settlement channel for a sale. Which methods are
// offered depends on the currency.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "efectivo"
	MethodZelle    PaymentMethod = "zelle"
	MethodPayPal   PaymentMethod = "paypal"
	MethodPOS      PaymentMethod = "punto de venta"
	MethodMobile   PaymentMethod = "pago móvil"
	MethodTransfer PaymentMethod = "transferencia"
)

// MethodsFor returns the payment methods available for the given currency.
func MethodsFor(c Currency) []PaymentMethod {
	if c == CurrencyForeign {
		return []PaymentMethod{MethodCash, MethodZelle, MethodPayPal}
	}
	return []PaymentMethod{MethodPOS, MethodMobile, MethodTransfer}
}

// CreditTerm records whether an organizational sale was settled up front or
// deferred. Individuals always settle in cash; TermNone marks the cases where
// no term was recorded and serializes as null.
type CreditTerm string

const (
	TermCash   CreditTerm = "contado"
	TermCredit CreditTerm = "credito"
	TermNone   CreditTerm = ""
)

// LineItem is the engine input: a resolved product and a quantity.
type LineItem struct {
	Product  product.Product
	Quantity int
}

// InvoiceLine is the captured form of a line item. Only the product name and
// quantity survive into the invoice, so later catalog edits cannot alter
// historical records.
type InvoiceLine struct {
	ProductName string
	Quantity    int
}

// CustomerRef captures the customer by value at sale time: kind tag,
// identifier, and name fields. It is not a live reference into the directory.
type CustomerRef struct {
	Kind      customer.Kind
	ID        string
	FirstName string
	LastName  string
	LegalName string
}

// NewCustomerRef snapshots the invoice-relevant fields of a customer.
func NewCustomerRef(c *customer.Customer) CustomerRef {
	return CustomerRef{
		Kind:      c.Kind,
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		LegalName: c.LegalName,
	}
}

// Customer reconstructs a customer value from the captured fields. Fields the
// snapshot does not carry stay empty, mirroring the load protocol.
func (r CustomerRef) Customer() customer.Customer {
	return customer.Customer{
		Kind:      r.Kind,
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		LegalName: r.LegalName,
	}
}

// DisplayName returns the customer name as shown on the invoice.
func (r CustomerRef) DisplayName() string {
	c := r.Customer()
	return c.DisplayName()
}

// Totals is the derived breakdown computed once per invoice. Subtotal is the
// post-discount subtotal, matching the stored format: Total = Subtotal + VAT
// + FXSurcharge always holds on these fields.
type Totals struct {
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	VAT         decimal.Decimal
	FXSurcharge decimal.Decimal
	Total       decimal.Decimal
}

// Invoice is the immutable record of a completed sale.
type Invoice struct {
	Customer   CustomerRef
	Lines      []InvoiceLine
	Method     PaymentMethod
	Currency   Currency
	CreditTerm CreditTerm
	IssueDate  time.Time
	Totals     Totals
}

// Snapshot is an invoice as decoded from storage. Its totals are untrusted:
// reconciliation re-derives them through the engine.
type Snapshot struct {
	Customer   CustomerRef
	Lines      []InvoiceLine
	Method     PaymentMethod
	Currency   Currency
	CreditTerm CreditTerm
	IssueDate  time.Time
	Totals     Totals
}

// Store persists the ledger. Save overwrites the full collection; Load
// returns the raw snapshots in stored order.
type Store interface {
	Load(ctx context.Context) ([]Snapshot, error)
	Save(ctx context.Context, invoices []Invoice) error
}

// Date normalizes t to midnight UTC so issue dates compare by calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
