package jsonfile

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/smontiel/partstore/internal/domain/shipment"
)

var _ shipment.Store = (*ShipmentStore)(nil)

// ShipmentStore persists the shipment ledger in the legacy envios.json shape.
type ShipmentStore struct {
	path string
}

// NewShipmentStore returns a ShipmentStore writing to path.
func NewShipmentStore(path string) *ShipmentStore {
	return &ShipmentStore{path: path}
}

// Load decodes the stored shipments in order.
func (s *ShipmentStore) Load(_ context.Context) ([]shipment.Shipment, error) {
	data, ok, err := readFile(s.path)
	if err != nil || !ok {
		return nil, err
	}

	var shipments []shipment.Shipment
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		sh, err := decodeShipment(d)
		if err != nil {
			return err
		}
		shipments = append(shipments, sh)
		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "decode %s", s.path)
	}
	return shipments, nil
}

// Save overwrites the file with the full ledger.
func (s *ShipmentStore) Save(_ context.Context, shipments []shipment.Shipment) error {
	var e jx.Encoder
	e.SetIdent(4)
	e.ArrStart()
	for i := range shipments {
		encodeShipment(&e, &shipments[i])
	}
	e.ArrEnd()
	return writeAtomic(s.path, e.Bytes())
}

func encodeShipment(e *jx.Encoder, s *shipment.Shipment) {
	e.ObjStart()
	e.FieldStart("orden_compra")
	e.Str(s.OrderRef)
	e.FieldStart("servicio_envio")
	e.Str(s.Carrier)
	e.FieldStart("motorizado")
	if s.Courier == nil {
		e.Null()
	} else {
		e.ObjStart()
		e.FieldStart("nombre")
		e.Str(s.Courier.Name)
		e.FieldStart("telefono")
		e.Str(s.Courier.Phone)
		e.ObjEnd()
	}
	e.FieldStart("costo")
	encodeDecimal(e, s.Cost)
	e.FieldStart("fecha")
	e.Str(s.Date.Format(dateLayout))
	e.ObjEnd()
}

func decodeShipment(d *jx.Decoder) (shipment.Shipment, error) {
	var sh shipment.Shipment
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "orden_compra":
			sh.OrderRef, err = decodeStr(d)
		case "servicio_envio":
			sh.Carrier, err = decodeStr(d)
		case "motorizado":
			if d.Next() == jx.Null {
				return d.Null()
			}
			var c shipment.Courier
			if err := d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "nombre":
					c.Name, err = decodeStr(d)
				case "telefono":
					c.Phone, err = decodeStr(d)
				default:
					err = d.Skip()
				}
				return err
			}); err != nil {
				return err
			}
			sh.Courier = &c
		case "costo":
			sh.Cost, err = decodeDecimal(d)
		case "fecha":
			var v string
			if v, err = decodeStr(d); err != nil {
				return err
			}
			t, perr := time.Parse(dateLayout, v)
			if perr != nil {
				return errors.Wrap(perr, "fecha")
			}
			sh.Date = t
		default:
			err = d.Skip()
		}
		return err
	})
	return sh, err
}
