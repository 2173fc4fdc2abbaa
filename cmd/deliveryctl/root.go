package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/deliveryops-api/internal/application/analytics"
	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/bootstrap"
	"github.com/jhoicas/deliveryops-api/pkg/config"
	"github.com/jhoicas/deliveryops-api/pkg/logger"
)

// globalFlags sobrescriben la configuración leída por config.Load.
type globalFlags struct {
	store      string
	sqlitePath string
	namespace  string
	verbose    bool
}

type reportFlags struct {
	from, to string
	status   string
	client   string
	driver   string
	vehicle  string
	product  string
	category string
	format   string
	out      string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "deliveryctl",
		Short:         "Dashboard y reportes de entregas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.store, "store", "", "backend: sqlite, postgres, redis, mongo, memory (por defecto STORE_DRIVER)")
	root.PersistentFlags().StringVar(&g.sqlitePath, "sqlite-path", "", "archivo SQLite (por defecto STORE_SQLITE_PATH)")
	root.PersistentFlags().StringVar(&g.namespace, "namespace", "", "prefijo de claves (por defecto STORE_NAMESPACE)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log detallado")

	root.AddCommand(newDashboardCmd(g), newReportCmd(g))
	return root
}

// open carga la configuración, aplica los flags y abre el almacén.
func open(ctx context.Context, g *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if g.store != "" {
		cfg.Store.Driver = g.store
	}
	if g.sqlitePath != "" {
		cfg.Store.SQLitePath = g.sqlitePath
	}
	if g.namespace != "" {
		cfg.Store.Namespace = g.namespace
	}
	level := "warn"
	if g.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})
	return bootstrap.Open(ctx, cfg, log)
}

func newDashboardCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Resumen financiero de hoy y de los últimos 7 días (JSON)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := open(ctx, g)
			if err != nil {
				return err
			}
			defer app.Close()

			sum, err := app.Dashboard.GetSummary(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), sum)
		},
	}
}

func newReportCmd(g *globalFlags) *cobra.Command {
	f := &reportFlags{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reportes filtrados de entregas y gastos",
	}
	cmd.PersistentFlags().StringVar(&f.from, "from", "", "fecha inicial YYYY-MM-DD")
	cmd.PersistentFlags().StringVar(&f.to, "to", "", "fecha final YYYY-MM-DD")
	cmd.PersistentFlags().StringVar(&f.format, "format", "json", "json, csv, xlsx o pdf")
	cmd.PersistentFlags().StringVarP(&f.out, "out", "o", "", "archivo de salida; \"-\" = stdout (por defecto el nombre estándar en el directorio actual)")

	deliveries := &cobra.Command{
		Use:   "deliveries",
		Short: "Reporte de entregas (protocolos)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := dto.DeliveryReportQuery{
				StartDate:  f.from,
				EndDate:    f.to,
				ClientName: f.client,
				Status:     f.status,
				ProductID:  f.product,
				DriverID:   f.driver,
				VehicleID:  f.vehicle,
			}
			return runReport(cmd, g, f, func(ctx context.Context, app *bootstrap.App) (interface{}, error) {
				return app.Reports.Deliveries(ctx, q)
			}, func(ctx context.Context, app *bootstrap.App) (*appanalytics.ExportResult, error) {
				return app.Reports.ExportDeliveries(ctx, q, f.format)
			})
		},
	}
	deliveries.Flags().StringVar(&f.status, "status", "", "scheduled o delivered")
	deliveries.Flags().StringVar(&f.client, "client", "", "cliente (contiene, sin distinguir mayúsculas)")
	deliveries.Flags().StringVar(&f.driver, "driver", "", "ID del motorista")
	deliveries.Flags().StringVar(&f.vehicle, "vehicle", "", "ID del vehículo")
	deliveries.Flags().StringVar(&f.product, "product", "", "ID del producto")

	expenses := &cobra.Command{
		Use:   "expenses",
		Short: "Reporte de gastos (despesas)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := dto.ExpenseReportQuery{StartDate: f.from, EndDate: f.to, CategoryID: f.category}
			return runReport(cmd, g, f, func(ctx context.Context, app *bootstrap.App) (interface{}, error) {
				return app.Reports.Expenses(ctx, q)
			}, func(ctx context.Context, app *bootstrap.App) (*appanalytics.ExportResult, error) {
				return app.Reports.ExportExpenses(ctx, q, f.format)
			})
		},
	}
	expenses.Flags().StringVar(&f.category, "category", "", "ID de la categoría")

	cmd.AddCommand(deliveries, expenses)
	return cmd
}

func runReport(
	cmd *cobra.Command,
	g *globalFlags,
	f *reportFlags,
	asJSON func(context.Context, *bootstrap.App) (interface{}, error),
	asFile func(context.Context, *bootstrap.App) (*appanalytics.ExportResult, error),
) error {
	ctx := cmd.Context()
	app, err := open(ctx, g)
	if err != nil {
		return err
	}
	defer app.Close()

	if f.format == "" || f.format == "json" {
		rep, err := asJSON(ctx, app)
		if err != nil {
			return err
		}
		if f.out == "" || f.out == "-" {
			return writeJSON(cmd.OutOrStdout(), rep)
		}
		file, err := os.Create(f.out)
		if err != nil {
			return err
		}
		defer file.Close()
		return writeJSON(file, rep)
	}

	res, err := asFile(ctx, app)
	if err != nil {
		return err
	}
	if f.out == "-" {
		_, err = cmd.OutOrStdout().Write(res.Data)
		return err
	}
	path := f.out
	if path == "" {
		path = filepath.Join(".", res.Filename)
	}
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "reporte guardado en %s (%d bytes)\n", path, len(res.Data))
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
