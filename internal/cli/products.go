package cli

import (
	"context"
	"strings"

	"github.com/smontiel/partstore/internal/domain/product"
)

func (m *Menu) productsMenu(ctx context.Context) bool {
	for {
		m.printf("\n--- Products ---\n")
		m.printf("1. List products\n")
		m.printf("2. Search product by name\n")
		m.printf("3. Add product\n")
		m.printf("4. Edit product\n")
		m.printf("5. Remove product\n")
		m.printf("0. Back\n")

		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			m.listProducts()
		case "2":
			if !m.searchProduct(ctx) {
				return false
			}
		case "3":
			if !m.addProduct(ctx) {
				return false
			}
		case "4":
			if !m.editProduct(ctx) {
				return false
			}
		case "5":
			if !m.removeProduct(ctx) {
				return false
			}
		case "0":
			return true
		default:
			m.printf("Invalid option, try again.\n")
		}
	}
}

func (m *Menu) listProducts() {
	products := m.app.Catalog.All()
	if len(products) == 0 {
		m.printf("No products registered.\n")
		return
	}
	for _, p := range products {
		m.printProduct(p)
	}
}

func (m *Menu) printProduct(p product.Product) {
	m.printf("[%d] %s - %s %s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Category)
	if p.Description != "" {
		m.printf("    %s\n", p.Description)
	}
	m.printf("    Inventory: %d\n", p.Inventory)
	if len(p.CompatibleVehicles) > 0 {
		m.printf("    Compatible vehicles: %s\n", strings.Join(p.CompatibleVehicles, ", "))
	}
}

func (m *Menu) searchProduct(ctx context.Context) bool {
	name, ok := m.prompt("Product name: ")
	if !ok {
		return false
	}
	p, err := m.app.Catalog.Find(ctx, name)
	if err != nil {
		m.printf("Product %q not found.\n", name)
		return true
	}
	m.printProduct(*p)
	return true
}

func (m *Menu) addProduct(ctx context.Context) bool {
	name, ok := m.prompt("Name: ")
	if !ok {
		return false
	}
	description, ok := m.prompt("Description: ")
	if !ok {
		return false
	}
	price, ok := m.promptDecimal("Price: ")
	if !ok {
		return false
	}
	category, ok := m.prompt("Category: ")
	if !ok {
		return false
	}
	inventory, ok := m.promptInt("Inventory: ")
	if !ok {
		return false
	}
	vehicles, ok := m.prompt("Compatible vehicles (comma separated, empty for none): ")
	if !ok {
		return false
	}
	p := product.Product{
		Name:               name,
		Description:        description,
		Price:              price,
		Category:           category,
		Inventory:          inventory,
		CompatibleVehicles: splitList(vehicles),
	}
	added, err := m.app.Catalog.Add(ctx, p)
	if err != nil {
		m.printf("Could not add product: %v\n", err)
		return true
	}
	m.printf("Product %q added with id %d.\n", added.Name, added.ID)
	return true
}

func (m *Menu) editProduct(ctx context.Context) bool {
	name, ok := m.prompt("Product to edit (name): ")
	if !ok {
		return false
	}
	p, err := m.app.Catalog.Find(ctx, name)
	if err != nil {
		m.printf("Product %q not found.\n", name)
		return true
	}
	m.printf("Press Enter to keep the current value.\n")

	answer, ok := m.prompt("Name [" + p.Name + "]: ")
	if !ok {
		return false
	}
	updated := *p
	updated.Name = orKeep(answer, p.Name)

	answer, ok = m.prompt("Description [" + p.Description + "]: ")
	if !ok {
		return false
	}
	updated.Description = orKeep(answer, p.Description)

	answer, ok = m.prompt("Price [" + p.Price.StringFixed(2) + "]: ")
	if !ok {
		return false
	}
	if answer != "" {
		price, err := parseDecimal(answer)
		if err != nil {
			m.printf("Invalid price, keeping %s.\n", p.Price.StringFixed(2))
		} else {
			updated.Price = price
		}
	}

	answer, ok = m.prompt("Category [" + p.Category + "]: ")
	if !ok {
		return false
	}
	updated.Category = orKeep(answer, p.Category)

	answer, ok = m.prompt("Inventory: ")
	if !ok {
		return false
	}
	if answer != "" {
		n, err := parseInt(answer)
		if err != nil {
			m.printf("Invalid inventory, keeping %d.\n", p.Inventory)
		} else {
			updated.Inventory = n
		}
	}

	if err := m.app.Catalog.Update(ctx, updated); err != nil {
		m.printf("Could not update product: %v\n", err)
		return true
	}
	m.printf("Product updated.\n")
	return true
}

func (m *Menu) removeProduct(ctx context.Context) bool {
	name, ok := m.prompt("Product to remove (name): ")
	if !ok {
		return false
	}
	p, err := m.app.Catalog.Find(ctx, name)
	if err != nil {
		m.printf("Product %q not found.\n", name)
		return true
	}
	if err := m.app.Catalog.Remove(ctx, p.ID); err != nil {
		m.printf("Could not remove product: %v\n", err)
		return true
	}
	m.printf("Product %q removed.\n", p.Name)
	return true
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
