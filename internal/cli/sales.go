package cli

import (
	"context"
	"strings"
	"time"

	"github.com/smontiel/partstore/internal/domain/customer"
	"github.com/smontiel/partstore/internal/domain/sale"
)

func (m *Menu) salesMenu(ctx context.Context) bool {
	for {
		m.printf("\n--- Sales ---\n")
		m.printf("1. Register sale\n")
		m.printf("2. List invoices\n")
		m.printf("3. Search invoices by customer\n")
		m.printf("4. Search invoices by date\n")
		m.printf("5. Remove invoice\n")
		m.printf("0. Back\n")

		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			if !m.registerSale(ctx) {
				return false
			}
		case "2":
			m.listInvoices(m.app.Sales.All())
		case "3":
			if !m.searchSalesByCustomer(ctx) {
				return false
			}
		case "4":
			if !m.searchSalesByDate() {
				return false
			}
		case "5":
			if !m.removeInvoice(ctx) {
				return false
			}
		case "0":
			return true
		default:
			m.printf("Invalid option, try again.\n")
		}
	}
}

func (m *Menu) registerSale(ctx context.Context) bool {
	key, ok := m.prompt("Customer id or email: ")
	if !ok {
		return false
	}
	cust, err := m.app.Customers.Find(ctx, key)
	if err != nil {
		m.printf("Customer %q not found. Register the customer first.\n", key)
		return true
	}

	items, ok := m.collectLineItems(ctx)
	if !ok {
		return false
	}
	if len(items) == 0 {
		m.printf("No products selected, sale cancelled.\n")
		return true
	}

	currency, ok := m.chooseCurrency()
	if !ok {
		return false
	}
	method, ok := m.chooseMethod(currency)
	if !ok {
		return false
	}

	term := sale.TermNone
	if cust.Kind == customer.KindOrganization {
		if term, ok = m.chooseCreditTerm(); !ok {
			return false
		}
	}

	inv, err := m.app.Engine.CreateInvoice(cust, items, method, currency, term, time.Time{})
	if err != nil {
		m.printf("Could not create the invoice: %v\n", err)
		return true
	}
	if err := m.app.Sales.Append(ctx, *inv); err != nil {
		m.printf("Invoice created but could not be persisted: %v\n", err)
	}
	m.printInvoice(inv)

	answer, ok := m.prompt("Register a shipment for this sale? (y/n): ")
	if !ok {
		return false
	}
	if strings.EqualFold(answer, "y") {
		return m.registerShipmentFor(ctx, cust.ID)
	}
	return true
}

// collectLineItems reads product name/quantity pairs until an empty name.
// Unknown products are reported and skipped rather than aborting the sale.
func (m *Menu) collectLineItems(ctx context.Context) ([]sale.LineItem, bool) {
	var items []sale.LineItem
	for {
		name, ok := m.prompt("Product name (empty to finish): ")
		if !ok {
			return nil, false
		}
		if name == "" {
			return items, true
		}
		p, err := m.app.Catalog.Find(ctx, name)
		if err != nil {
			m.printf("Product %q not found.\n", name)
			continue
		}
		qty, ok := m.promptInt("Quantity: ")
		if !ok {
			return nil, false
		}
		if qty <= 0 {
			m.printf("Quantity must be positive.\n")
			continue
		}
		items = append(items, sale.LineItem{Product: *p, Quantity: qty})
		m.printf("Added %d x %s.\n", qty, p.Name)
	}
}

func (m *Menu) chooseCurrency() (sale.Currency, bool) {
	for {
		m.printf("Currency:\n1. Bolivares\n2. Foreign currency (divisas)\n")
		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return "", false
		}
		switch choice {
		case "1":
			return sale.CurrencyLocal, true
		case "2":
			return sale.CurrencyForeign, true
		}
		m.printf("Invalid option, try again.\n")
	}
}

func (m *Menu) chooseMethod(currency sale.Currency) (sale.PaymentMethod, bool) {
	methods := sale.MethodsFor(currency)
	for {
		m.printf("Payment method:\n")
		for i, method := range methods {
			m.printf("%d. %s\n", i+1, method)
		}
		n, ok := m.promptInt("Select an option: ")
		if !ok {
			return "", false
		}
		if n >= 1 && n <= len(methods) {
			return methods[n-1], true
		}
		m.printf("Invalid option, try again.\n")
	}
}

func (m *Menu) chooseCreditTerm() (sale.CreditTerm, bool) {
	for {
		m.printf("Credit term:\n1. Cash (contado)\n2. Credit\n")
		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return sale.TermNone, false
		}
		switch choice {
		case "1":
			return sale.TermCash, true
		case "2":
			return sale.TermCredit, true
		}
		m.printf("Invalid option, try again.\n")
	}
}

func (m *Menu) listInvoices(invoices []sale.Invoice) {
	if len(invoices) == 0 {
		m.printf("No invoices found.\n")
		return
	}
	for i := range invoices {
		m.printf("--- Invoice %d ---\n", i+1)
		m.printInvoice(&invoices[i])
	}
}

func (m *Menu) printInvoice(inv *sale.Invoice) {
	m.printf("Customer: %s (%s)\n", inv.Customer.DisplayName(), inv.Customer.ID)
	m.printf("Date: %s\n", inv.IssueDate.Format(dateLayout))
	for _, line := range inv.Lines {
		m.printf("  %d x %s\n", line.Quantity, line.ProductName)
	}
	m.printf("Payment: %s (%s)", inv.Method, inv.Currency)
	if inv.CreditTerm != sale.TermNone {
		m.printf(", %s", inv.CreditTerm)
	}
	m.printf("\n")
	m.printf("Subtotal:     %s\n", inv.Totals.Subtotal.StringFixed(2))
	m.printf("Discount:     %s\n", inv.Totals.Discount.StringFixed(2))
	m.printf("VAT (16%%):    %s\n", inv.Totals.VAT.StringFixed(2))
	m.printf("IGTF (3%%):    %s\n", inv.Totals.FXSurcharge.StringFixed(2))
	m.printf("Total:        %s\n", inv.Totals.Total.StringFixed(2))
}

func (m *Menu) searchSalesByCustomer(ctx context.Context) bool {
	key, ok := m.prompt("Customer id or email: ")
	if !ok {
		return false
	}
	cust, err := m.app.Customers.Find(ctx, key)
	if err != nil {
		m.printf("Customer %q not found.\n", key)
		return true
	}
	m.listInvoices(m.app.Sales.FindByCustomer(cust.ID))
	return true
}

func (m *Menu) searchSalesByDate() bool {
	date, ok := m.promptDate("Date (YYYY-MM-DD): ")
	if !ok {
		return false
	}
	m.listInvoices(m.app.Sales.FindByDate(date))
	return true
}

func (m *Menu) removeInvoice(ctx context.Context) bool {
	m.listInvoices(m.app.Sales.All())
	if len(m.app.Sales.All()) == 0 {
		return true
	}
	n, ok := m.promptInt("Invoice number to remove: ")
	if !ok {
		return false
	}
	removed, err := m.app.Sales.RemoveAt(ctx, n-1)
	if err != nil {
		m.printf("Could not remove invoice: %v\n", err)
		return true
	}
	m.printf("Removed invoice for %s dated %s.\n",
		removed.Customer.DisplayName(), removed.IssueDate.Format(dateLayout))
	return true
}
