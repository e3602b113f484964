package cli

import (
	"context"

	"github.com/smontiel/partstore/internal/domain/payment"
	"github.com/smontiel/partstore/internal/domain/sale"
)

func (m *Menu) paymentsMenu(ctx context.Context) bool {
	for {
		m.printf("\n--- Payments ---\n")
		m.printf("1. Register payment\n")
		m.printf("2. List payments\n")
		m.printf("3. Search payments\n")
		m.printf("4. Remove payment\n")
		m.printf("0. Back\n")

		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			if !m.registerPayment(ctx) {
				return false
			}
		case "2":
			m.listPayments(m.app.Payments.All())
		case "3":
			if !m.searchPayments(ctx) {
				return false
			}
		case "4":
			if !m.removePayment(ctx) {
				return false
			}
		case "0":
			return true
		default:
			m.printf("Invalid option, try again.\n")
		}
	}
}

func (m *Menu) registerPayment(ctx context.Context) bool {
	key, ok := m.prompt("Customer id or email: ")
	if !ok {
		return false
	}
	cust, err := m.app.Customers.Find(ctx, key)
	if err != nil {
		m.printf("Customer %q not found.\n", key)
		return true
	}
	amount, ok := m.promptDecimal("Amount: ")
	if !ok {
		return false
	}
	currency, ok := m.chooseCurrency()
	if !ok {
		return false
	}
	method, ok := m.chooseMethod(currency)
	if !ok {
		return false
	}
	date, ok := m.promptDate("Date (YYYY-MM-DD): ")
	if !ok {
		return false
	}
	p := payment.Payment{
		Customer: *cust,
		Amount:   amount,
		Currency: string(currency),
		Method:   string(method),
		Date:     sale.Date(date),
	}
	if err := m.app.Payments.Register(ctx, p); err != nil {
		m.printf("Could not register payment: %v\n", err)
		return true
	}
	m.printf("Payment of %s %s registered for %s.\n",
		amount.StringFixed(2), currency, cust.DisplayName())
	return true
}

func (m *Menu) listPayments(payments []payment.Payment) {
	if len(payments) == 0 {
		m.printf("No payments found.\n")
		return
	}
	for i, p := range payments {
		m.printf("%d. %s paid %s %s via %s on %s",
			i+1, p.Customer.DisplayName(), p.Amount.StringFixed(2),
			p.Currency, p.Method, p.Date.Format(dateLayout))
		if p.Reference != "" {
			m.printf(" (ref %s)", p.Reference)
		}
		m.printf("\n")
	}
}

func (m *Menu) searchPayments(ctx context.Context) bool {
	var f payment.Filter
	key, ok := m.prompt("Customer id (empty for any): ")
	if !ok {
		return false
	}
	if key != "" {
		cust, err := m.app.Customers.Find(ctx, key)
		if err != nil {
			m.printf("Customer %q not found.\n", key)
			return true
		}
		f.CustomerID = cust.ID
	}
	date, ok := m.promptOptionalDate("Date (YYYY-MM-DD, empty for any): ")
	if !ok {
		return false
	}
	f.Date = date
	if f.Method, ok = m.prompt("Method (empty for any): "); !ok {
		return false
	}
	if f.Currency, ok = m.prompt("Currency (empty for any): "); !ok {
		return false
	}
	m.listPayments(m.app.Payments.Search(f))
	return true
}

func (m *Menu) removePayment(ctx context.Context) bool {
	date, ok := m.promptDate("Payment date (YYYY-MM-DD): ")
	if !ok {
		return false
	}
	amount, ok := m.promptDecimal("Payment amount: ")
	if !ok {
		return false
	}
	removed, err := m.app.Payments.RemoveMatching(ctx, date, amount)
	if err != nil {
		m.printf("No payment of %s on %s found.\n", amount.StringFixed(2), date.Format(dateLayout))
		return true
	}
	m.printf("Removed payment of %s %s by %s.\n",
		removed.Amount.StringFixed(2), removed.Currency, removed.Customer.DisplayName())
	return true
}
