package jsonfile

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/smontiel/partstore/internal/domain/product"
)

var _ product.Store = (*ProductStore)(nil)

// ProductStore persists the catalog in productos.json. When the local file
// is absent or unreadable it falls back to a synchronous fetch of the seed
// catalog URL, mirroring the previous system's bootstrap behaviour. The
// fetch blocks the caller; there is no retry.
type ProductStore struct {
	path    string
	seedURL string
	client  *http.Client
}

// NewProductStore returns a ProductStore writing to path. seedURL may be
// empty to disable the remote fallback.
func NewProductStore(path, seedURL string, timeout time.Duration) *ProductStore {
	return &ProductStore{
		path:    path,
		seedURL: seedURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Load decodes the local catalog, falling back to the remote seed.
func (s *ProductStore) Load(ctx context.Context) ([]product.Product, error) {
	data, ok, err := readFile(s.path)
	if err == nil && ok {
		products, decErr := decodeProducts(data)
		if decErr == nil {
			return products, nil
		}
		err = decErr
	}
	if err != nil {
		zctx.From(ctx).Warn("Local catalog unusable, fetching seed", zap.Error(err))
	}
	if s.seedURL == "" {
		return nil, err
	}
	return s.fetchSeed(ctx)
}

// Save overwrites the file with the full catalog.
func (s *ProductStore) Save(_ context.Context, products []product.Product) error {
	var e jx.Encoder
	e.SetIdent(4)
	e.ArrStart()
	for i := range products {
		encodeProduct(&e, &products[i])
	}
	e.ArrEnd()
	return writeAtomic(s.path, e.Bytes())
}

func (s *ProductStore) fetchSeed(ctx context.Context) ([]product.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.seedURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build seed request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch seed catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch seed catalog: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read seed catalog")
	}
	products, err := decodeProducts(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode seed catalog")
	}
	zctx.From(ctx).Info("Catalog seeded from remote", zap.Int("products", len(products)))
	return products, nil
}

func encodeProduct(e *jx.Encoder, p *product.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int(p.ID)
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("description")
	e.Str(p.Description)
	e.FieldStart("price")
	encodeDecimal(e, p.Price)
	e.FieldStart("category")
	e.Str(p.Category)
	e.FieldStart("inventory")
	e.Int(p.Inventory)
	e.FieldStart("compatible_vehicles")
	e.ArrStart()
	for _, v := range p.CompatibleVehicles {
		e.Str(v)
	}
	e.ArrEnd()
	e.ObjEnd()
}

func decodeProducts(data []byte) ([]product.Product, error) {
	var products []product.Product
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		p, err := decodeProduct(d)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func decodeProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Int()
		case "name":
			p.Name, err = decodeStr(d)
		case "description":
			p.Description, err = decodeStr(d)
		case "price":
			p.Price, err = decodeDecimal(d)
		case "category":
			p.Category, err = decodeStr(d)
		case "inventory":
			p.Inventory, err = d.Int()
		case "compatible_vehicles":
			return d.Arr(func(d *jx.Decoder) error {
				v, err := decodeStr(d)
				if err != nil {
					return err
				}
				p.CompatibleVehicles = append(p.CompatibleVehicles, v)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
	return p, err
}
