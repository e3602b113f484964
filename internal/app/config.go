package app

import (
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (PARTSTORE_ prefix), flags, or YAML config files.
type Config struct {
	DataDir        string        `default:"data" usage:"directory holding the JSON data files" flag:"data-dir"`
	CatalogSeedURL string        `default:"https://raw.githubusercontent.com/Algoritmos-y-Programacion/api-proyecto/main/products.json" usage:"remote catalog fetched when the local products file is missing" flag:"catalog-seed-url"`
	FetchTimeout   time.Duration `default:"15s" usage:"timeout for the catalog seed fetch" flag:"fetch-timeout"`
	LogLevel       string        `default:"info" usage:"log level (debug, info, warn, error)" flag:"log-level"`
	Files          FilesConfig
}

// FilesConfig names the ledger and registry files inside DataDir. The
// defaults are the historical file names; changing them orphans existing
// data.
type FilesConfig struct {
	Customers string `default:"clientes.json" usage:"customer registry file"`
	Products  string `default:"productos.json" usage:"product catalog file"`
	Sales     string `default:"ventas.json" usage:"sales ledger file"`
	Payments  string `default:"pagos.json" usage:"payment ledger file"`
	Shipments string `default:"envios.json" usage:"shipment ledger file"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "PARTSTORE",
		Files:     []string{"config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}

// CustomersPath returns the full path of the customer registry file.
func (c *Config) CustomersPath() string { return filepath.Join(c.DataDir, c.Files.Customers) }

// ProductsPath returns the full path of the product catalog file.
func (c *Config) ProductsPath() string { return filepath.Join(c.DataDir, c.Files.Products) }

// SalesPath returns the full path of the sales ledger file.
func (c *Config) SalesPath() string { return filepath.Join(c.DataDir, c.Files.Sales) }

// PaymentsPath returns the full path of the payment ledger file.
func (c *Config) PaymentsPath() string { return filepath.Join(c.DataDir, c.Files.Payments) }

// ShipmentsPath returns the full path of the shipment ledger file.
func (c *Config) ShipmentsPath() string { return filepath.Join(c.DataDir, c.Files.Shipments) }

// DataFiles returns all data file paths, for backup.
func (c *Config) DataFiles() []string {
	return []string{
		c.CustomersPath(),
		c.ProductsPath(),
		c.SalesPath(),
		c.PaymentsPath(),
		c.ShipmentsPath(),
	}
}
