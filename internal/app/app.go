// Package app wires the stores, registries, and ledgers into one running
// application. It is the single construction point; no package below it
// reaches for globals.
package app

import (
	"context"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/smontiel/partstore/internal/domain/customer"
	"github.com/smontiel/partstore/internal/domain/payment"
	"github.com/smontiel/partstore/internal/domain/product"
	"github.com/smontiel/partstore/internal/domain/sale"
	"github.com/smontiel/partstore/internal/domain/shipment"
	"github.com/smontiel/partstore/internal/report"
	"github.com/smontiel/partstore/internal/storage/jsonfile"
)

// App aggregates the domain services over their file-backed stores. All
// operations are synchronous and single-user: one action runs to completion
// before the next is accepted.
type App struct {
	Customers *customer.Directory
	Catalog   *product.Catalog
	Engine    *sale.Engine
	Sales     *sale.Ledger
	Payments  *payment.Ledger
	Shipments *shipment.Ledger

	cfg *Config
}

// New constructs the application services from configuration.
func New(cfg *Config) *App {
	engine := sale.NewEngine()
	catalog := product.NewCatalog(jsonfile.NewProductStore(cfg.ProductsPath(), cfg.CatalogSeedURL, cfg.FetchTimeout))

	return &App{
		Customers: customer.NewDirectory(jsonfile.NewCustomerStore(cfg.CustomersPath())),
		Catalog:   catalog,
		Engine:    engine,
		Sales:     sale.NewLedger(jsonfile.NewSaleStore(cfg.SalesPath()), catalog, engine),
		Payments:  payment.NewLedger(jsonfile.NewPaymentStore(cfg.PaymentsPath())),
		Shipments: shipment.NewLedger(jsonfile.NewShipmentStore(cfg.ShipmentsPath())),
		cfg:       cfg,
	}
}

// Load reads every persisted collection. The catalog loads first because
// sales reconciliation resolves product references against it; a failed
// catalog load degrades to an empty catalog rather than aborting startup.
func (a *App) Load(ctx context.Context) {
	if err := a.Catalog.Load(ctx); err != nil {
		zctx.From(ctx).Warn("Catalog unavailable, starting empty", zap.Error(err))
	}
	a.Customers.Load(ctx)
	a.Sales.Load(ctx)
	a.Payments.Load(ctx)
	a.Shipments.Load(ctx)
}

// DataFiles returns the backing file paths, for backup.
func (a *App) DataFiles() []string {
	return a.cfg.DataFiles()
}

// ReportData snapshots the ledgers for aggregation.
func (a *App) ReportData() *report.Data {
	return &report.Data{
		Sales:     a.Sales.All(),
		Payments:  a.Payments.All(),
		Shipments: a.Shipments.All(),
	}
}
