// Package cli implements the interactive console menus. It owns prompting
// and formatting only; every business rule lives in the domain services.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smontiel/partstore/internal/app"
)

const dateLayout = "2006-01-02"

// Menu is the line-oriented console interface. Reads block until the user
// answers; there is no concurrency and no cancellation mid-prompt.
type Menu struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Menu bound to stdin/stdout.
func New(a *app.App) *Menu {
	return NewWithIO(a, os.Stdin, os.Stdout)
}

// NewWithIO returns a Menu reading from r and writing to w.
func NewWithIO(a *app.App, r io.Reader, w io.Writer) *Menu {
	return &Menu{app: a, in: bufio.NewScanner(r), out: w}
}

// Run loops the main menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printf("\n--- Main Menu ---\n")
		m.printf("1. Products\n")
		m.printf("2. Customers\n")
		m.printf("3. Payments\n")
		m.printf("4. Sales\n")
		m.printf("5. Shipments\n")
		m.printf("6. Reports\n")
		m.printf("0. Exit\n")

		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			if !m.productsMenu(ctx) {
				return nil
			}
		case "2":
			if !m.customersMenu(ctx) {
				return nil
			}
		case "3":
			if !m.paymentsMenu(ctx) {
				return nil
			}
		case "4":
			if !m.salesMenu(ctx) {
				return nil
			}
		case "5":
			if !m.shipmentsMenu(ctx) {
				return nil
			}
		case "6":
			if !m.reportsMenu() {
				return nil
			}
		case "0":
			m.printf("Goodbye.\n")
			return nil
		default:
			m.printf("Invalid option, try again.\n")
		}
	}
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// prompt prints the label and reads one trimmed line. ok=false means input
// is exhausted and the caller should unwind.
func (m *Menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptInt keeps asking until it reads a valid integer.
func (m *Menu) promptInt(label string) (int, bool) {
	for {
		s, ok := m.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			m.printf("Please enter a whole number.\n")
			continue
		}
		return n, true
	}
}

// promptDecimal keeps asking until it reads a valid amount. Comma decimal
// separators are accepted for operator convenience.
func (m *Menu) promptDecimal(label string) (decimal.Decimal, bool) {
	for {
		s, ok := m.prompt(label)
		if !ok {
			return decimal.Decimal{}, false
		}
		v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			m.printf("Please enter a valid amount (use '.' as the decimal separator).\n")
			continue
		}
		return v, true
	}
}

// promptDate keeps asking until it reads a YYYY-MM-DD date.
func (m *Menu) promptDate(label string) (time.Time, bool) {
	for {
		s, ok := m.prompt(label)
		if !ok {
			return time.Time{}, false
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			m.printf("Please enter a date as YYYY-MM-DD.\n")
			continue
		}
		return t, true
	}
}

// promptOptionalDate reads a date or an empty line meaning "no filter".
func (m *Menu) promptOptionalDate(label string) (*time.Time, bool) {
	for {
		s, ok := m.prompt(label)
		if !ok {
			return nil, false
		}
		if s == "" {
			return nil, true
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			m.printf("Please enter a date as YYYY-MM-DD or leave empty.\n")
			continue
		}
		return &t, true
	}
}

// orKeep returns the answer, or current when the answer is empty. Used by
// the edit flows where Enter keeps the existing value.
func orKeep(answer, current string) string {
	if answer == "" {
		return current
	}
	return answer
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
