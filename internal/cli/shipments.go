package cli

import (
	"context"
	"strings"

	"github.com/smontiel/partstore/internal/domain/shipment"
)

// carriers offered by the register flow. Motorcycle couriers additionally
// capture the rider's name and phone.
var carriers = []string{"MRW", "Zoom", "Tealca", "Domesa", "Delivery motorizado"}

func (m *Menu) shipmentsMenu(ctx context.Context) bool {
	for {
		m.printf("\n--- Shipments ---\n")
		m.printf("1. Register shipment\n")
		m.printf("2. List shipments\n")
		m.printf("3. Search shipments\n")
		m.printf("4. Remove shipment\n")
		m.printf("0. Back\n")

		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			key, ok := m.prompt("Customer id for the purchase order: ")
			if !ok {
				return false
			}
			if !m.registerShipmentFor(ctx, key) {
				return false
			}
		case "2":
			m.listShipments(m.app.Shipments.All())
		case "3":
			if !m.searchShipments() {
				return false
			}
		case "4":
			if !m.removeShipment(ctx) {
				return false
			}
		case "0":
			return true
		default:
			m.printf("Invalid option, try again.\n")
		}
	}
}

// registerShipmentFor captures a shipment against the given purchase order
// reference. The sale flow chains here after issuing an invoice.
func (m *Menu) registerShipmentFor(ctx context.Context, orderRef string) bool {
	m.printf("Carrier:\n")
	for i, c := range carriers {
		m.printf("%d. %s\n", i+1, c)
	}
	var carrier string
	for carrier == "" {
		n, ok := m.promptInt("Select an option: ")
		if !ok {
			return false
		}
		if n >= 1 && n <= len(carriers) {
			carrier = carriers[n-1]
		} else {
			m.printf("Invalid option, try again.\n")
		}
	}

	var courier *shipment.Courier
	if strings.Contains(strings.ToLower(carrier), "motorizado") {
		name, ok := m.prompt("Courier name: ")
		if !ok {
			return false
		}
		phone, ok := m.prompt("Courier phone: ")
		if !ok {
			return false
		}
		courier = &shipment.Courier{Name: name, Phone: phone}
	}

	cost, ok := m.promptDecimal("Shipping cost: ")
	if !ok {
		return false
	}
	date, ok := m.promptDate("Shipment date (YYYY-MM-DD): ")
	if !ok {
		return false
	}

	s := shipment.Shipment{
		OrderRef: orderRef,
		Carrier:  carrier,
		Courier:  courier,
		Cost:     cost,
		Date:     date,
	}
	if err := m.app.Shipments.Register(ctx, s); err != nil {
		m.printf("Could not register shipment: %v\n", err)
		return true
	}
	m.printf("Shipment via %s registered for order %s.\n", carrier, orderRef)
	return true
}

func (m *Menu) listShipments(shipments []shipment.Shipment) {
	if len(shipments) == 0 {
		m.printf("No shipments found.\n")
		return
	}
	for i, s := range shipments {
		m.printf("%d. Order %s via %s, cost %s, on %s",
			i+1, s.OrderRef, s.Carrier, s.Cost.StringFixed(2), s.Date.Format(dateLayout))
		if s.Courier != nil {
			m.printf(" (courier %s %s)", s.Courier.Name, s.Courier.Phone)
		}
		m.printf("\n")
	}
}

func (m *Menu) searchShipments() bool {
	customerID, ok := m.prompt("Customer id (empty for any): ")
	if !ok {
		return false
	}
	date, ok := m.promptOptionalDate("Date (YYYY-MM-DD, empty for any): ")
	if !ok {
		return false
	}
	m.listShipments(m.app.Shipments.Search(customerID, date))
	return true
}

func (m *Menu) removeShipment(ctx context.Context) bool {
	m.listShipments(m.app.Shipments.All())
	if len(m.app.Shipments.All()) == 0 {
		return true
	}
	n, ok := m.promptInt("Shipment number to remove: ")
	if !ok {
		return false
	}
	removed, err := m.app.Shipments.RemoveAt(ctx, n-1)
	if err != nil {
		m.printf("Could not remove shipment: %v\n", err)
		return true
	}
	m.printf("Removed shipment for order %s via %s.\n", removed.OrderRef, removed.Carrier)
	return true
}
