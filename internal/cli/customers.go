package cli

import (
	"context"

	"github.com/smontiel/partstore/internal/domain/customer"
)

func (m *Menu) customersMenu(ctx context.Context) bool {
	for {
		m.printf("\n--- Customers ---\n")
		m.printf("1. List customers\n")
		m.printf("2. Search customer\n")
		m.printf("3. Register individual customer\n")
		m.printf("4. Register organization customer\n")
		m.printf("5. Edit customer\n")
		m.printf("6. Remove customer\n")
		m.printf("0. Back\n")

		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			m.listCustomers()
		case "2":
			if !m.searchCustomer(ctx) {
				return false
			}
		case "3":
			if !m.registerIndividual(ctx) {
				return false
			}
		case "4":
			if !m.registerOrganization(ctx) {
				return false
			}
		case "5":
			if !m.editCustomer(ctx) {
				return false
			}
		case "6":
			if !m.removeCustomer(ctx) {
				return false
			}
		case "0":
			return true
		default:
			m.printf("Invalid option, try again.\n")
		}
	}
}

func (m *Menu) listCustomers() {
	customers := m.app.Customers.All()
	if len(customers) == 0 {
		m.printf("No customers registered.\n")
		return
	}
	for i := range customers {
		m.printCustomer(&customers[i])
	}
}

func (m *Menu) printCustomer(c *customer.Customer) {
	if c.Kind == customer.KindOrganization {
		m.printf("[%s] %s (organization)\n", c.ID, c.LegalName)
		if c.ContactName != "" {
			m.printf("    Contact: %s %s %s\n", c.ContactName, c.ContactPhone, c.ContactEmail)
		}
	} else {
		m.printf("[%s] %s\n", c.ID, c.DisplayName())
	}
	if c.Email != "" {
		m.printf("    Email: %s\n", c.Email)
	}
	if c.Phone != "" {
		m.printf("    Phone: %s\n", c.Phone)
	}
	if c.ShippingAddress != "" {
		m.printf("    Shipping address: %s\n", c.ShippingAddress)
	}
}

func (m *Menu) searchCustomer(ctx context.Context) bool {
	key, ok := m.prompt("Customer id or email: ")
	if !ok {
		return false
	}
	c, err := m.app.Customers.Find(ctx, key)
	if err != nil {
		m.printf("Customer %q not found.\n", key)
		return true
	}
	m.printCustomer(c)
	return true
}

func (m *Menu) registerIndividual(ctx context.Context) bool {
	c := customer.Customer{Kind: customer.KindIndividual}
	var ok bool
	if c.ID, ok = m.prompt("Id document (cedula/RIF): "); !ok {
		return false
	}
	if c.FirstName, ok = m.prompt("First name: "); !ok {
		return false
	}
	if c.LastName, ok = m.prompt("Last name: "); !ok {
		return false
	}
	return m.finishRegister(ctx, c)
}

func (m *Menu) registerOrganization(ctx context.Context) bool {
	c := customer.Customer{Kind: customer.KindOrganization}
	var ok bool
	if c.ID, ok = m.prompt("RIF: "); !ok {
		return false
	}
	if c.LegalName, ok = m.prompt("Legal name: "); !ok {
		return false
	}
	if c.ContactName, ok = m.prompt("Contact name: "); !ok {
		return false
	}
	if c.ContactPhone, ok = m.prompt("Contact phone: "); !ok {
		return false
	}
	if c.ContactEmail, ok = m.prompt("Contact email: "); !ok {
		return false
	}
	return m.finishRegister(ctx, c)
}

func (m *Menu) finishRegister(ctx context.Context, c customer.Customer) bool {
	var ok bool
	if c.Email, ok = m.prompt("Email: "); !ok {
		return false
	}
	if c.Phone, ok = m.prompt("Phone: "); !ok {
		return false
	}
	if c.ShippingAddress, ok = m.prompt("Shipping address: "); !ok {
		return false
	}
	if err := m.app.Customers.Register(ctx, c); err != nil {
		m.printf("Could not register customer: %v\n", err)
		return true
	}
	m.printf("Customer %s registered.\n", c.DisplayName())
	return true
}

func (m *Menu) editCustomer(ctx context.Context) bool {
	key, ok := m.prompt("Customer to edit (id or email): ")
	if !ok {
		return false
	}
	c, err := m.app.Customers.Find(ctx, key)
	if err != nil {
		m.printf("Customer %q not found.\n", key)
		return true
	}
	m.printf("Press Enter to keep the current value.\n")
	updated := *c

	if updated.Kind == customer.KindOrganization {
		answer, ok := m.prompt("Legal name [" + c.LegalName + "]: ")
		if !ok {
			return false
		}
		updated.LegalName = orKeep(answer, c.LegalName)

		if answer, ok = m.prompt("Contact name [" + c.ContactName + "]: "); !ok {
			return false
		}
		updated.ContactName = orKeep(answer, c.ContactName)

		if answer, ok = m.prompt("Contact phone [" + c.ContactPhone + "]: "); !ok {
			return false
		}
		updated.ContactPhone = orKeep(answer, c.ContactPhone)

		if answer, ok = m.prompt("Contact email [" + c.ContactEmail + "]: "); !ok {
			return false
		}
		updated.ContactEmail = orKeep(answer, c.ContactEmail)
	} else {
		answer, ok := m.prompt("First name [" + c.FirstName + "]: ")
		if !ok {
			return false
		}
		updated.FirstName = orKeep(answer, c.FirstName)

		if answer, ok = m.prompt("Last name [" + c.LastName + "]: "); !ok {
			return false
		}
		updated.LastName = orKeep(answer, c.LastName)
	}

	answer, ok := m.prompt("Email [" + c.Email + "]: ")
	if !ok {
		return false
	}
	updated.Email = orKeep(answer, c.Email)

	if answer, ok = m.prompt("Phone [" + c.Phone + "]: "); !ok {
		return false
	}
	updated.Phone = orKeep(answer, c.Phone)

	if answer, ok = m.prompt("Shipping address [" + c.ShippingAddress + "]: "); !ok {
		return false
	}
	updated.ShippingAddress = orKeep(answer, c.ShippingAddress)

	if err := m.app.Customers.Update(ctx, updated); err != nil {
		m.printf("Could not update customer: %v\n", err)
		return true
	}
	m.printf("Customer updated.\n")
	return true
}

func (m *Menu) removeCustomer(ctx context.Context) bool {
	key, ok := m.prompt("Customer to remove (id): ")
	if !ok {
		return false
	}
	if err := m.app.Customers.Remove(ctx, key); err != nil {
		m.printf("Could not remove customer: %v\n", err)
		return true
	}
	m.printf("Customer %s removed.\n", key)
	return true
}
