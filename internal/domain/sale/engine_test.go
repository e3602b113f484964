package sale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smontiel/partstore/internal/domain/customer"
	"github.com/smontiel/partstore/internal/domain/product"
)

// --- Helpers ---

func newTestProduct(id int, name, price string) product.Product {
	return product.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "test",
	}
}

func newIndividual(id string) *customer.Customer {
	return &customer.Customer{
		Kind:      customer.KindIndividual,
		ID:        id,
		FirstName: "Ana",
		LastName:  "Perez",
	}
}

func newOrganization(id string) *customer.Customer {
	return &customer.Customer{
		Kind:      customer.KindOrganization,
		ID:        id,
		LegalName: "Repuestos CA",
	}
}

func newFixedEngine(t time.Time) *Engine {
	e := NewEngine()
	e.now = func() time.Time { return t }
	return e
}

// --- Tests ---

func TestCreateInvoice_NilCustomer(t *testing.T) {
	e := NewEngine()

	_, err := e.CreateInvoice(nil, []LineItem{{Product: newTestProduct(1, "Filter", "10"), Quantity: 1}},
		MethodPOS, CurrencyLocal, TermNone, time.Time{})
	require.ErrorIs(t, err, ErrNilCustomer)
}

func TestCreateInvoice_EmptyItems(t *testing.T) {
	e := NewEngine()

	_, err := e.CreateInvoice(newIndividual("V-1"), nil, MethodPOS, CurrencyLocal, TermNone, time.Time{})
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestCreateInvoice_InvalidQuantity(t *testing.T) {
	e := NewEngine()

	_, err := e.CreateInvoice(newIndividual("V-1"),
		[]LineItem{{Product: newTestProduct(1, "Filter", "10"), Quantity: 0}},
		MethodPOS, CurrencyLocal, TermNone, time.Time{})

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, "Filter", iqErr.ProductName)
	assert.Equal(t, 0, iqErr.Quantity)
}

func TestCreateInvoice_NegativePrice(t *testing.T) {
	e := NewEngine()

	_, err := e.CreateInvoice(newIndividual("V-1"),
		[]LineItem{{Product: newTestProduct(1, "Filter", "-1"), Quantity: 1}},
		MethodPOS, CurrencyLocal, TermNone, time.Time{})

	var npErr *NegativePriceError
	require.ErrorAs(t, err, &npErr)
	assert.Equal(t, "Filter", npErr.ProductName)
}

func TestCreateInvoice_OrganizationCashDiscount(t *testing.T) {
	e := NewEngine()

	inv, err := e.CreateInvoice(newOrganization("J-1"),
		[]LineItem{{Product: newTestProduct(1, "Brake Pad", "100"), Quantity: 2}},
		MethodPOS, CurrencyLocal, TermCash, time.Time{})
	require.NoError(t, err)

	// 200 gross, 5% discount, VAT on the discounted subtotal, no surcharge.
	assert.True(t, decimal.RequireFromString("190").Equal(inv.Totals.Subtotal))
	assert.True(t, decimal.RequireFromString("10").Equal(inv.Totals.Discount))
	assert.True(t, decimal.RequireFromString("30.4").Equal(inv.Totals.VAT))
	assert.True(t, decimal.Zero.Equal(inv.Totals.FXSurcharge))
	assert.True(t, decimal.RequireFromString("220.4").Equal(inv.Totals.Total))
}

func TestCreateInvoice_OrganizationCreditNoDiscount(t *testing.T) {
	e := NewEngine()

	inv, err := e.CreateInvoice(newOrganization("J-1"),
		[]LineItem{{Product: newTestProduct(1, "Brake Pad", "100"), Quantity: 2}},
		MethodPOS, CurrencyLocal, TermCredit, time.Time{})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("200").Equal(inv.Totals.Subtotal))
	assert.True(t, decimal.Zero.Equal(inv.Totals.Discount))
	assert.True(t, decimal.RequireFromString("232").Equal(inv.Totals.Total))
}

func TestCreateInvoice_ForeignCashSurcharge(t *testing.T) {
	e := NewEngine()

	inv, err := e.CreateInvoice(newIndividual("V-1"),
		[]LineItem{{Product: newTestProduct(1, "Oil", "50"), Quantity: 1}},
		MethodZelle, CurrencyForeign, TermNone, time.Time{})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("50").Equal(inv.Totals.Subtotal))
	assert.True(t, decimal.Zero.Equal(inv.Totals.Discount))
	assert.True(t, decimal.RequireFromString("8").Equal(inv.Totals.VAT))
	assert.True(t, decimal.RequireFromString("1.5").Equal(inv.Totals.FXSurcharge))
	assert.True(t, decimal.RequireFromString("59.5").Equal(inv.Totals.Total))
}

func TestCreateInvoice_SurchargeMatrix(t *testing.T) {
	tests := []struct {
		name      string
		method    PaymentMethod
		currency  Currency
		surcharge bool
	}{
		{"cash in foreign currency", MethodCash, CurrencyForeign, true},
		{"zelle in foreign currency", MethodZelle, CurrencyForeign, true},
		{"paypal in foreign currency", MethodPayPal, CurrencyForeign, true},
		{"pos in local currency", MethodPOS, CurrencyLocal, false},
		{"mobile in local currency", MethodMobile, CurrencyLocal, false},
		{"transfer in local currency", MethodTransfer, CurrencyLocal, false},
		{"cash in local currency", MethodCash, CurrencyLocal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			inv, err := e.CreateInvoice(newIndividual("V-1"),
				[]LineItem{{Product: newTestProduct(1, "Oil", "100"), Quantity: 1}},
				tt.method, tt.currency, TermNone, time.Time{})
			require.NoError(t, err)

			if tt.surcharge {
				assert.True(t, decimal.RequireFromString("3").Equal(inv.Totals.FXSurcharge))
			} else {
				assert.True(t, decimal.Zero.Equal(inv.Totals.FXSurcharge))
			}
		})
	}
}

func TestCreateInvoice_IndividualNeverDiscounted(t *testing.T) {
	e := NewEngine()

	// TermCash on an individual must not trigger the organizational discount.
	inv, err := e.CreateInvoice(newIndividual("V-1"),
		[]LineItem{{Product: newTestProduct(1, "Oil", "100"), Quantity: 1}},
		MethodPOS, CurrencyLocal, TermCash, time.Time{})
	require.NoError(t, err)

	assert.True(t, decimal.Zero.Equal(inv.Totals.Discount))
	assert.True(t, decimal.RequireFromString("100").Equal(inv.Totals.Subtotal))
}

func TestCreateInvoice_TotalIdentity(t *testing.T) {
	e := NewEngine()

	inv, err := e.CreateInvoice(newOrganization("J-1"),
		[]LineItem{
			{Product: newTestProduct(1, "Oil", "33.33"), Quantity: 3},
			{Product: newTestProduct(2, "Filter", "7.5"), Quantity: 2},
		},
		MethodPayPal, CurrencyForeign, TermCash, time.Time{})
	require.NoError(t, err)

	sum := inv.Totals.Subtotal.Add(inv.Totals.VAT).Add(inv.Totals.FXSurcharge)
	assert.True(t, sum.Equal(inv.Totals.Total))
}

func TestCreateInvoice_DefaultIssueDate(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 17, 30, 0, 0, time.Local)
	e := newFixedEngine(fixed)

	inv, err := e.CreateInvoice(newIndividual("V-1"),
		[]LineItem{{Product: newTestProduct(1, "Oil", "10"), Quantity: 1}},
		MethodPOS, CurrencyLocal, TermNone, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), inv.IssueDate)
}

func TestCreateInvoice_ExplicitIssueDate(t *testing.T) {
	e := NewEngine()

	issued := time.Date(2023, 11, 2, 9, 0, 0, 0, time.UTC)
	inv, err := e.CreateInvoice(newIndividual("V-1"),
		[]LineItem{{Product: newTestProduct(1, "Oil", "10"), Quantity: 1}},
		MethodPOS, CurrencyLocal, TermNone, issued)
	require.NoError(t, err)

	assert.Equal(t, Date(issued), inv.IssueDate)
}

func TestCreateInvoice_CapturesCustomerAndLines(t *testing.T) {
	e := NewEngine()

	inv, err := e.CreateInvoice(newOrganization("J-1"),
		[]LineItem{{Product: newTestProduct(1, "Oil", "10"), Quantity: 4}},
		MethodTransfer, CurrencyLocal, TermCredit, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, customer.KindOrganization, inv.Customer.Kind)
	assert.Equal(t, "J-1", inv.Customer.ID)
	assert.Equal(t, "Repuestos CA", inv.Customer.LegalName)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, InvoiceLine{ProductName: "Oil", Quantity: 4}, inv.Lines[0])
}
