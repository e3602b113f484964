package jsonfile

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/smontiel/partstore/internal/domain/customer"
	"github.com/smontiel/partstore/internal/domain/payment"
)

var _ payment.Store = (*PaymentStore)(nil)

// PaymentStore persists the payment ledger in the legacy pagos.json shape.
// Records with no customer identifier or an unparseable date are skipped
// with a diagnostic rather than failing the load; the historical files
// contain such entries.
type PaymentStore struct {
	path string
}

// NewPaymentStore returns a PaymentStore writing to path.
func NewPaymentStore(path string) *PaymentStore {
	return &PaymentStore{path: path}
}

// Load decodes the stored payments in order, skipping unusable records.
func (s *PaymentStore) Load(ctx context.Context) ([]payment.Payment, error) {
	data, ok, err := readFile(s.path)
	if err != nil || !ok {
		return nil, err
	}

	lg := zctx.From(ctx)
	var payments []payment.Payment
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		p, err := decodePayment(d)
		if err != nil {
			return err
		}
		if p.Customer.ID == "" {
			lg.Warn("Skipping payment with incomplete customer data")
			return nil
		}
		if p.Date.IsZero() {
			lg.Warn("Skipping payment with invalid date", zap.String("customer_id", p.Customer.ID))
			return nil
		}
		payments = append(payments, p)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.path)
	}
	return payments, nil
}

// Save overwrites the file with the full ledger.
func (s *PaymentStore) Save(_ context.Context, payments []payment.Payment) error {
	var e jx.Encoder
	e.SetIdent(4)
	e.ArrStart()
	for i := range payments {
		encodePayment(&e, &payments[i])
	}
	e.ArrEnd()
	return writeAtomic(s.path, e.Bytes())
}

func encodePayment(e *jx.Encoder, p *payment.Payment) {
	e.ObjStart()

	e.FieldStart("cliente")
	e.ObjStart()
	e.FieldStart("cedula_rif")
	e.Str(p.Customer.ID)
	e.FieldStart("correo_electronico")
	e.Str(p.Customer.Email)
	e.FieldStart("direccion_envio")
	e.Str(p.Customer.ShippingAddress)
	e.FieldStart("telefono")
	e.Str(p.Customer.Phone)
	if p.Customer.Kind == customer.KindOrganization {
		e.FieldStart("razon_social")
		e.Str(p.Customer.LegalName)
	} else {
		e.FieldStart("nombre")
		e.Str(p.Customer.FirstName)
		e.FieldStart("apellido")
		e.Str(p.Customer.LastName)
	}
	e.ObjEnd()

	e.FieldStart("monto")
	encodeDecimal(e, p.Amount)
	e.FieldStart("moneda")
	e.Str(p.Currency)
	e.FieldStart("tipo_pago")
	e.Str(p.Method)
	e.FieldStart("fecha")
	e.Str(p.Date.Format(dateLayout))
	if p.Reference != "" {
		e.FieldStart("referencia")
		e.Str(p.Reference)
	}

	e.ObjEnd()
}

func decodePayment(d *jx.Decoder) (payment.Payment, error) {
	var p payment.Payment
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "cliente":
			p.Customer, err = decodePaymentCustomer(d)
		case "monto":
			p.Amount, err = decodeDecimal(d)
		case "moneda":
			p.Currency, err = decodeStr(d)
		case "tipo_pago":
			p.Method, err = decodeStr(d)
		case "referencia":
			p.Reference, err = decodeStr(d)
		case "fecha":
			var v string
			if v, err = decodeStr(d); err != nil {
				return err
			}
			// Bad dates downgrade to the zero time; the caller skips
			// the record with a diagnostic.
			if t, perr := time.Parse(dateLayout, v); perr == nil {
				p.Date = t
			}
		default:
			err = d.Skip()
		}
		return err
	})
	return p, err
}

func decodePaymentCustomer(d *jx.Decoder) (customer.Customer, error) {
	var c customer.Customer
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "cedula_rif":
			c.ID, err = decodeStr(d)
		case "correo_electronico":
			c.Email, err = decodeStr(d)
		case "direccion_envio":
			c.ShippingAddress, err = decodeStr(d)
		case "telefono":
			c.Phone, err = decodeStr(d)
		case "nombre":
			c.FirstName, err = decodeStr(d)
		case "apellido":
			c.LastName, err = decodeStr(d)
		case "razon_social":
			c.LegalName, err = decodeStr(d)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return c, err
	}
	if c.LegalName != "" {
		c.Kind = customer.KindOrganization
	} else {
		c.Kind = customer.KindIndividual
	}
	return c, nil
}
