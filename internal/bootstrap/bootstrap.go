// Package bootstrap arma el grafo de dependencias compartido por la API y el CLI.
package bootstrap

import (
	"context"
	"io"

	appanalytics "github.com/jhoicas/deliveryops-api/internal/application/analytics"
	"github.com/jhoicas/deliveryops-api/internal/application/delivery"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/application/usecase"
	"github.com/jhoicas/deliveryops-api/internal/domain/repository"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/export"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/media"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/deliveryops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/deliveryops-api/internal/interfaces/http"
	"github.com/jhoicas/deliveryops-api/pkg/config"
	"github.com/jhoicas/deliveryops-api/pkg/logger"
)

// App casos de uso listos para usar sobre un backend ya abierto.
type App struct {
	Collections   *store.Collections
	Notifications *notify.Recorder
	Clock         usecase.Clock

	Products          *usecase.ProductUseCase
	Drivers           *usecase.DriverUseCase
	Vehicles          *usecase.VehicleUseCase
	ExpenseCategories *usecase.ExpenseCategoryUseCase
	Expenses          *usecase.ExpenseUseCase
	Deliveries        *delivery.UseCase
	Dashboard         *appanalytics.DashboardUseCase
	Reports           *appanalytics.ReportUseCase

	maxUpload int
	closer    io.Closer
}

// Open abre el almacén configurado y construye los casos de uso.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	kv, closer, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Component("store").Info().Str("driver", cfg.Store.Driver).Str("namespace", cfg.Store.Namespace).Msg("almacén de registros abierto")

	a := New(kv, cfg, log)
	a.closer = closer
	return a, nil
}

// New construye los casos de uso sobre kv. Los avisos van al log y al Recorder.
func New(kv repository.KeyValueStore, cfg *config.Config, log *logger.Logger) *App {
	cols := store.NewCollections(kv, cfg.Store.Namespace)
	rec := notify.NewRecorder(notify.DefaultCapacity)
	var notifier ports.Notifier = notify.Multi{notify.NewLogNotifier(log), rec}
	clock := usecase.SystemClock(cfg.App.Location())

	return &App{
		Collections:   cols,
		Notifications: rec,
		Clock:         clock,

		Products:          usecase.NewProductUseCase(cols.Products, notifier, clock),
		Drivers:           usecase.NewDriverUseCase(cols.Drivers, cols.Vehicles, notifier, clock),
		Vehicles:          usecase.NewVehicleUseCase(cols.Vehicles, cols.Products, notifier, clock),
		ExpenseCategories: usecase.NewExpenseCategoryUseCase(cols.ExpenseCategories, notifier, clock),
		Expenses:          usecase.NewExpenseUseCase(cols.Expenses, cols.ExpenseCategories, notifier, clock),
		Deliveries: delivery.NewUseCase(
			cols.Deliveries, cols.Products, cols.Drivers, cols.Vehicles,
			media.NewProcessor(cfg.Media), notifier, clock,
		),
		Dashboard: appanalytics.NewDashboardUseCase(cols.Deliveries, cols.Expenses, clock),
		Reports: appanalytics.NewReportUseCase(appanalytics.ReportRepos{
			Deliveries: cols.Deliveries,
			Products:   cols.Products,
			Drivers:    cols.Drivers,
			Vehicles:   cols.Vehicles,
			Expenses:   cols.Expenses,
			Categories: cols.ExpenseCategories,
		}, clock,
			export.NewCSVExporter(),
			export.NewXLSXExporter(),
			infrapdf.NewReportGenerator(cfg.App.Name),
		),

		maxUpload: cfg.Media.MaxUploadBytes,
	}
}

// RouterDeps dependencias del router HTTP.
func (a *App) RouterDeps() httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		ProductUC:         a.Products,
		DriverUC:          a.Drivers,
		VehicleUC:         a.Vehicles,
		ExpenseCategoryUC: a.ExpenseCategories,
		ExpenseUC:         a.Expenses,
		DeliveryUC:        a.Deliveries,
		DashboardUC:       a.Dashboard,
		ReportUC:          a.Reports,
		Notifications:     a.Notifications,
		MaxUploadBytes:    a.maxUpload,
	}
}

// Close libera la conexión al backend.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
