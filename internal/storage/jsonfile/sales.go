package jsonfile

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/smontiel/partstore/internal/domain/customer"
	"github.com/smontiel/partstore/internal/domain/sale"
)

var _ sale.Store = (*SaleStore)(nil)

// SaleStore persists invoice snapshots in the legacy ventas.json shape.
type SaleStore struct {
	path string
}

// NewSaleStore returns a SaleStore writing to path.
func NewSaleStore(path string) *SaleStore {
	return &SaleStore{path: path}
}

// Load decodes the stored snapshots in order. An absent file is an empty
// collection; any decode error fails the whole load.
func (s *SaleStore) Load(_ context.Context) ([]sale.Snapshot, error) {
	data, ok, err := readFile(s.path)
	if err != nil || !ok {
		return nil, err
	}

	var snapshots []sale.Snapshot
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		snap, err := decodeSnapshot(d)
		if err != nil {
			return err
		}
		snapshots = append(snapshots, snap)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.path)
	}
	return snapshots, nil
}

// Save overwrites the file with the full invoice collection.
func (s *SaleStore) Save(_ context.Context, invoices []sale.Invoice) error {
	var e jx.Encoder
	e.SetIdent(4)
	e.ArrStart()
	for i := range invoices {
		encodeInvoice(&e, &invoices[i])
	}
	e.ArrEnd()
	return writeAtomic(s.path, e.Bytes())
}

func encodeInvoice(e *jx.Encoder, inv *sale.Invoice) {
	e.ObjStart()

	e.FieldStart("cliente")
	e.ObjStart()
	if inv.Customer.Kind == customer.KindOrganization {
		e.FieldStart("razon_social")
		e.Str(inv.Customer.LegalName)
	} else {
		e.FieldStart("nombre")
		e.Str(inv.Customer.FirstName)
		e.FieldStart("apellido")
		e.Str(inv.Customer.LastName)
	}
	e.FieldStart("cedula_rif")
	e.Str(inv.Customer.ID)
	e.FieldStart("tipo")
	e.Str(string(inv.Customer.Kind))
	e.ObjEnd()

	e.FieldStart("productos")
	e.ArrStart()
	for _, line := range inv.Lines {
		e.ArrStart()
		e.Str(line.ProductName)
		e.Int(line.Quantity)
		e.ArrEnd()
	}
	e.ArrEnd()

	e.FieldStart("metodo_pago")
	e.Str(string(inv.Method))
	e.FieldStart("tipo_moneda")
	e.Str(string(inv.Currency))
	e.FieldStart("tipo_credito")
	if inv.CreditTerm == sale.TermNone {
		e.Null()
	} else {
		e.Str(string(inv.CreditTerm))
	}
	e.FieldStart("fecha")
	e.Str(inv.IssueDate.Format(dateLayout))

	e.FieldStart("totales")
	e.ObjStart()
	e.FieldStart("subtotal")
	encodeDecimal(e, inv.Totals.Subtotal)
	e.FieldStart("descuentos")
	encodeDecimal(e, inv.Totals.Discount)
	e.FieldStart("iva")
	encodeDecimal(e, inv.Totals.VAT)
	e.FieldStart("igtf")
	encodeDecimal(e, inv.Totals.FXSurcharge)
	e.FieldStart("total")
	encodeDecimal(e, inv.Totals.Total)
	e.ObjEnd()

	e.ObjEnd()
}

func decodeSnapshot(d *jx.Decoder) (sale.Snapshot, error) {
	var snap sale.Snapshot
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "cliente":
			ref, err := decodeCustomerRef(d)
			if err != nil {
				return errors.Wrap(err, "cliente")
			}
			snap.Customer = ref
			return nil
		case "productos":
			return d.Arr(func(d *jx.Decoder) error {
				line, err := decodeLine(d)
				if err != nil {
					return errors.Wrap(err, "productos")
				}
				snap.Lines = append(snap.Lines, line)
				return nil
			})
		case "metodo_pago":
			v, err := d.Str()
			snap.Method = sale.PaymentMethod(v)
			return err
		case "tipo_moneda":
			v, err := d.Str()
			snap.Currency = sale.Currency(v)
			return err
		case "tipo_credito":
			if d.Next() == jx.Null {
				snap.CreditTerm = sale.TermNone
				return d.Null()
			}
			v, err := d.Str()
			snap.CreditTerm = sale.CreditTerm(v)
			return err
		case "fecha":
			v, err := d.Str()
			if err != nil {
				return err
			}
			t, err := time.Parse(dateLayout, v)
			if err != nil {
				return errors.Wrap(err, "fecha")
			}
			snap.IssueDate = t
			return nil
		case "totales":
			return decodeTotals(d, &snap.Totals)
		default:
			return d.Skip()
		}
	})
	return snap, err
}

// decodeCustomerRef reconstructs the embedded customer from its tagged
// fields. The tipo discriminator selects the variant; when it is absent the
// presence of razon_social decides. Missing fields stay empty.
func decodeCustomerRef(d *jx.Decoder) (sale.CustomerRef, error) {
	var ref sale.CustomerRef
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "tipo":
			var v string
			v, err = decodeStr(d)
			ref.Kind = customer.Kind(v)
		case "cedula_rif":
			ref.ID, err = decodeStr(d)
		case "nombre":
			ref.FirstName, err = decodeStr(d)
		case "apellido":
			ref.LastName, err = decodeStr(d)
		case "razon_social":
			ref.LegalName, err = decodeStr(d)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return ref, err
	}
	if ref.Kind == "" {
		if ref.LegalName != "" {
			ref.Kind = customer.KindOrganization
		} else {
			ref.Kind = customer.KindIndividual
		}
	}
	return ref, nil
}

// decodeLine reads one [name, quantity] tuple.
func decodeLine(d *jx.Decoder) (sale.InvoiceLine, error) {
	var line sale.InvoiceLine
	pos := 0
	err := d.Arr(func(d *jx.Decoder) error {
		defer func() { pos++ }()
		switch pos {
		case 0:
			v, err := d.Str()
			line.ProductName = v
			return err
		case 1:
			v, err := d.Int()
			line.Quantity = v
			return err
		default:
			return errors.New("line item tuple has more than 2 elements")
		}
	})
	if err != nil {
		return line, err
	}
	if pos != 2 {
		return line, errors.Errorf("line item tuple has %d elements, want 2", pos)
	}
	return line, nil
}

func decodeTotals(d *jx.Decoder, t *sale.Totals) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "subtotal":
			t.Subtotal, err = decodeDecimal(d)
		case "descuentos":
			t.Discount, err = decodeDecimal(d)
		case "iva":
			t.VAT, err = decodeDecimal(d)
		case "igtf":
			t.FXSurcharge, err = decodeDecimal(d)
		case "total":
			t.Total, err = decodeDecimal(d)
		default:
			err = d.Skip()
		}
		return err
	})
}
