package sale

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/smontiel/partstore/internal/domain/customer"
)

// Sentinel errors for invoice preconditions.
var (
	ErrEmptyItems  = errors.New("at least one line item required")
	ErrNilCustomer = errors.New("customer required")
)

// InvalidQuantityError indicates a line item with a non-positive quantity.
type InvalidQuantityError struct {
	ProductName string
	Quantity    int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %q, got %d", e.ProductName, e.Quantity)
}

// NegativePriceError indicates a line item whose unit price is negative.
type NegativePriceError struct {
	ProductName string
}

func (e *NegativePriceError) Error() string {
	return fmt.Sprintf("unit price must not be negative for product %q", e.ProductName)
}

// Tax and surcharge policy. Fixed rates; no internal rounding is applied, so
// presentation-layer rounding stays a caller concern.
var (
	discountRate = decimal.RequireFromString("0.05")
	vatRate      = decimal.RequireFromString("0.16")
	fxRate       = decimal.RequireFromString("0.03")
)

// fxMethods are the cash-equivalent methods that attract the FX surcharge
// when paying in foreign currency.
var fxMethods = map[PaymentMethod]bool{
	MethodCash:   true,
	MethodZelle:  true,
	MethodPayPal: true,
}

// Engine produces immutable invoices. It is pure computation: no storage,
// no side effects. The clock is injectable for tests.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an Engine using the wall clock for default issue dates.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// CreateInvoice validates the inputs, computes the total breakdown, and
// returns the invoice. A zero issued time defaults to the current date.
//
// The calculation order is fixed: subtotal, then a 5% discount iff the
// customer is organizational and the term is cash, then 16% VAT on the
// discounted subtotal, then a 3% FX surcharge iff paying a cash-equivalent
// method in foreign currency.
func (e *Engine) CreateInvoice(
	c *customer.Customer,
	items []LineItem,
	method PaymentMethod,
	currency Currency,
	term CreditTerm,
	issued time.Time,
) (*Invoice, error) {
	if c == nil {
		return nil, ErrNilCustomer
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductName: item.Product.Name, Quantity: item.Quantity}
		}
		if item.Product.Price.IsNegative() {
			return nil, &NegativePriceError{ProductName: item.Product.Name}
		}
	}

	subtotal := decimal.Zero
	lines := make([]InvoiceLine, len(items))
	for i, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(item.Product.Price.Mul(qty))
		lines[i] = InvoiceLine{ProductName: item.Product.Name, Quantity: item.Quantity}
	}

	discount := decimal.Zero
	if c.Kind == customer.KindOrganization && term == TermCash {
		discount = subtotal.Mul(discountRate)
	}
	subtotal = subtotal.Sub(discount)

	vat := subtotal.Mul(vatRate)

	fx := decimal.Zero
	if currency == CurrencyForeign && fxMethods[method] {
		fx = subtotal.Mul(fxRate)
	}

	total := subtotal.Add(vat).Add(fx)

	if issued.IsZero() {
		issued = e.now()
	}

	return &Invoice{
		Customer:   NewCustomerRef(c),
		Lines:      lines,
		Method:     method,
		Currency:   currency,
		CreditTerm: term,
		IssueDate:  Date(issued),
		Totals: Totals{
			Subtotal:    subtotal,
			Discount:    discount,
			VAT:         vat,
			FXSurcharge: fx,
			Total:       total,
		},
	}, nil
}
