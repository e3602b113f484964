package jsonfile

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/smontiel/partstore/internal/domain/customer"
)

var _ customer.Store = (*CustomerStore)(nil)

// CustomerStore persists the customer registry in the legacy clientes.json
// shape. Organizational records are discriminated by the presence of
// razon_social, matching how the previous system read the file.
type CustomerStore struct {
	path string
}

// NewCustomerStore returns a CustomerStore writing to path.
func NewCustomerStore(path string) *CustomerStore {
	return &CustomerStore{path: path}
}

// Load decodes the stored registry in order.
func (s *CustomerStore) Load(_ context.Context) ([]customer.Customer, error) {
	data, ok, err := readFile(s.path)
	if err != nil || !ok {
		return nil, err
	}

	var customers []customer.Customer
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		c, err := decodeCustomer(d)
		if err != nil {
			return err
		}
		customers = append(customers, c)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.path)
	}
	return customers, nil
}

// Save overwrites the file with the full registry.
func (s *CustomerStore) Save(_ context.Context, customers []customer.Customer) error {
	var e jx.Encoder
	e.SetIdent(4)
	e.ArrStart()
	for i := range customers {
		encodeCustomer(&e, &customers[i])
	}
	e.ArrEnd()
	return writeAtomic(s.path, e.Bytes())
}

func encodeCustomer(e *jx.Encoder, c *customer.Customer) {
	e.ObjStart()
	e.FieldStart("nombre")
	e.Str(c.FirstName)
	e.FieldStart("apellido")
	e.Str(c.LastName)
	e.FieldStart("cedula_rif")
	e.Str(c.ID)
	e.FieldStart("correo_electronico")
	e.Str(c.Email)
	e.FieldStart("direccion_envio")
	e.Str(c.ShippingAddress)
	e.FieldStart("telefono")
	e.Str(c.Phone)
	if c.Kind == customer.KindOrganization {
		e.FieldStart("razon_social")
		e.Str(c.LegalName)
		e.FieldStart("nombre_contacto")
		e.Str(c.ContactName)
		e.FieldStart("telefono_contacto")
		e.Str(c.ContactPhone)
		e.FieldStart("correo_contacto")
		e.Str(c.ContactEmail)
	}
	e.ObjEnd()
}

func decodeCustomer(d *jx.Decoder) (customer.Customer, error) {
	var c customer.Customer
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "nombre":
			c.FirstName, err = decodeStr(d)
		case "apellido":
			c.LastName, err = decodeStr(d)
		case "cedula_rif":
			c.ID, err = decodeStr(d)
		case "correo_electronico":
			c.Email, err = decodeStr(d)
		case "direccion_envio":
			c.ShippingAddress, err = decodeStr(d)
		case "telefono":
			c.Phone, err = decodeStr(d)
		case "razon_social":
			c.LegalName, err = decodeStr(d)
		case "nombre_contacto":
			c.ContactName, err = decodeStr(d)
		case "telefono_contacto":
			c.ContactPhone, err = decodeStr(d)
		case "correo_contacto":
			c.ContactEmail, err = decodeStr(d)
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
