package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/bootstrap"
	"github.com/jhoicas/deliveryops-api/pkg/config"
	"github.com/jhoicas/deliveryops-api/pkg/logger"
)

// seedSQLite crea un producto, un motorista, un vehículo y una entrega para hoy.
func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deliveryops.db")
	cfg := &config.Config{
		App:   config.AppConfig{Name: "deliveryops", Timezone: "America/Sao_Paulo"},
		Store: config.StoreConfig{Driver: "sqlite", SQLitePath: path},
		Media: config.MediaConfig{MaxPhotoWidth: 100},
	}
	ctx := context.Background()
	app, err := bootstrap.Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer app.Close()

	p, err := app.Products.Create(ctx, dto.CreateProductRequest{Name: "Gás P13", Description: "Botijão 13kg", DefaultValue: decimal.NewFromInt(110)})
	require.NoError(t, err)
	d, err := app.Drivers.Create(ctx, dto.CreateDriverRequest{Name: "João"})
	require.NoError(t, err)
	v, err := app.Vehicles.Create(ctx, dto.CreateVehicleRequest{Name: "Caminhão", Plate: "abc1d23"})
	require.NoError(t, err)
	_, err = app.Deliveries.Create(ctx, dto.CreateDeliveryRequest{
		ClientName: "Maria",
		Products:   []dto.DeliveryProductRequest{{ProductID: p.ID, Quantity: decimal.NewFromInt(1)}},
		DriverID:   d.ID,
		VehicleID:  v.ID,
	})
	require.NoError(t, err)
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDashboardCmd(t *testing.T) {
	db := seedSQLite(t)
	out, err := run(t, "--store", "sqlite", "--sqlite-path", db, "dashboard")
	require.NoError(t, err)

	var sum dto.DashboardSummaryDTO
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Len(t, sum.Last7Days, 7)
	assert.Equal(t, 1, sum.ScheduledToday)
}

func TestReportDeliveriesCSV(t *testing.T) {
	db := seedSQLite(t)
	dest := filepath.Join(t.TempDir(), "protocolos.csv")
	_, err := run(t, "--store", "sqlite", "--sqlite-path", db,
		"report", "deliveries", "--client", "mar", "--format", "csv", "--out", dest)
	require.NoError(t, err)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Maria")
	assert.Contains(t, string(raw), "Gás P13")
}

func TestReportExpensesJSONToStdout(t *testing.T) {
	db := seedSQLite(t)
	out, err := run(t, "--store", "sqlite", "--sqlite-path", db, "report", "expenses")
	require.NoError(t, err)

	var rep dto.ExpenseReportDTO
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 0, rep.Count)
}

func TestReportRejectsUnknownFormat(t *testing.T) {
	db := seedSQLite(t)
	_, err := run(t, "--store", "sqlite", "--sqlite-path", db, "report", "deliveries", "--format", "docx", "--out", "-")
	require.Error(t, err)
}
