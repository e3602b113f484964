package cli

import (
	"github.com/smontiel/partstore/internal/report"
)

func (m *Menu) reportsMenu() bool {
	for {
		m.printf("\n--- Reports ---\n")
		m.printf("1. Sales totals\n")
		m.printf("2. Payment totals\n")
		m.printf("3. Shipment counts\n")
		m.printf("4. Best-selling products\n")
		m.printf("5. Most frequent customers\n")
		m.printf("0. Back\n")

		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return false
		}
		switch choice {
		case "1":
			period, ok := m.choosePeriod()
			if !ok {
				return false
			}
			m.printEntries(m.app.ReportData().SalesTotals(period))
		case "2":
			period, ok := m.choosePeriod()
			if !ok {
				return false
			}
			m.printEntries(m.app.ReportData().PaymentTotals(period))
		case "3":
			period, ok := m.choosePeriod()
			if !ok {
				return false
			}
			m.printCounts(m.app.ReportData().ShipmentCounts(period))
		case "4":
			n, ok := m.promptInt("How many products: ")
			if !ok {
				return false
			}
			m.printCounts(m.app.ReportData().TopProducts(n))
		case "5":
			n, ok := m.promptInt("How many customers: ")
			if !ok {
				return false
			}
			m.printCounts(m.app.ReportData().TopCustomers(n))
		case "0":
			return true
		default:
			m.printf("Invalid option, try again.\n")
		}
	}
}

func (m *Menu) choosePeriod() (report.Period, bool) {
	for {
		m.printf("Period:\n1. Day\n2. Week\n3. Month\n4. Year\n")
		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return "", false
		}
		switch choice {
		case "1":
			return report.PeriodDay, true
		case "2":
			return report.PeriodWeek, true
		case "3":
			return report.PeriodMonth, true
		case "4":
			return report.PeriodYear, true
		}
		m.printf("Invalid option, try again.\n")
	}
}

func (m *Menu) printEntries(entries []report.Entry) {
	if len(entries) == 0 {
		m.printf("No data for this report.\n")
		return
	}
	for _, e := range entries {
		m.printf("%-12s %s\n", e.Bucket, e.Total.StringFixed(2))
	}
}

func (m *Menu) printCounts(counts []report.Count) {
	if len(counts) == 0 {
		m.printf("No data for this report.\n")
		return
	}
	for _, c := range counts {
		m.printf("%-30s %d\n", c.Key, c.Count)
	}
}
