package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/deliveryops-api/internal/application/analytics"
	"github.com/jhoicas/deliveryops-api/internal/application/delivery"
	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/usecase"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/export"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/media"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/notify"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/store"
	apphttp "github.com/jhoicas/deliveryops-api/internal/interfaces/http"
	"github.com/jhoicas/deliveryops-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSignature = "data:image/png;base64,iVBORw0KGgo="

type testEnv struct {
	app  *fiber.App
	cols *store.Collections
	rec  *notify.Recorder
}

// newTestEnv arma la API completa sobre el backend en memoria con el reloj fijo en 10/03/2026 16:45.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	loc := time.FixedZone("BRT", -3*60*60)
	clock := usecase.Clock{
		Now:      func() time.Time { return time.Date(2026, 3, 10, 16, 45, 0, 0, loc) },
		Location: loc,
	}
	cols := store.NewCollections(store.NewMemory(), "")
	rec := notify.NewRecorder(notify.DefaultCapacity)
	proc := media.NewProcessor(config.MediaConfig{MaxPhotoWidth: 64, MaxUploadBytes: 1 << 20})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:         usecase.NewProductUseCase(cols.Products, rec, clock),
		DriverUC:          usecase.NewDriverUseCase(cols.Drivers, cols.Vehicles, rec, clock),
		VehicleUC:         usecase.NewVehicleUseCase(cols.Vehicles, cols.Products, rec, clock),
		ExpenseCategoryUC: usecase.NewExpenseCategoryUseCase(cols.ExpenseCategories, rec, clock),
		ExpenseUC:         usecase.NewExpenseUseCase(cols.Expenses, cols.ExpenseCategories, rec, clock),
		DeliveryUC:        delivery.NewUseCase(cols.Deliveries, cols.Products, cols.Drivers, cols.Vehicles, proc, rec, clock),
		DashboardUC:       appanalytics.NewDashboardUseCase(cols.Deliveries, cols.Expenses, clock),
		ReportUC: appanalytics.NewReportUseCase(appanalytics.ReportRepos{
			Deliveries: cols.Deliveries,
			Products:   cols.Products,
			Drivers:    cols.Drivers,
			Vehicles:   cols.Vehicles,
			Expenses:   cols.Expenses,
			Categories: cols.ExpenseCategories,
		}, clock, export.NewCSVExporter(), export.NewXLSXExporter()),
		Notifications:  rec,
		MaxUploadBytes: 1 << 20,
	})
	return &testEnv{app: app, cols: cols, rec: rec}
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.cols.Products.Create(ctx, entity.Product{ID: "p1", Name: "Gás P13", Description: "Botijão 13kg", DefaultValue: decimal.NewFromInt(110)}))
	require.NoError(t, e.cols.Drivers.Create(ctx, entity.Driver{ID: "d1", Name: "João"}))
	require.NoError(t, e.cols.Vehicles.Create(ctx, entity.Vehicle{ID: "v1", Name: "Caminhão", Plate: "ABC1D23"}))
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) createDelivery(t *testing.T) dto.DeliveryResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/deliveries", map[string]interface{}{
		"client_name":   "Maria",
		"products":      []map[string]interface{}{{"product_id": "p1", "quantity": 2}},
		"delivery_date": "2026-03-10",
		"delivery_time": "09:30",
		"driver_id":     "d1",
		"vehicle_id":    "v1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.DeliveryResponse
	decode(t, resp, &out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProductCRUD(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/products", map[string]interface{}{"description": "sem nome"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "name", errBody.Field)

	resp = env.do(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Água 20L", "description": "Galão", "default_value": "15.50",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.ProductResponse
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)

	resp = env.do(t, http.MethodPut, "/api/products/"+created.ID, map[string]interface{}{"name": "Água mineral 20L"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated dto.ProductResponse
	decode(t, resp, &updated)
	assert.Equal(t, "Água mineral 20L", updated.Name)
	assert.Equal(t, "Galão", updated.Description)

	resp = env.do(t, http.MethodGet, "/api/products", nil)
	var list dto.ListResponse[dto.ProductResponse]
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Total)

	resp = env.do(t, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "NOT_FOUND", errBody.Code)
}

func TestDeliveryConfirmRequiresSignature(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	d := env.createDelivery(t)
	assert.Equal(t, "scheduled", d.Status)
	assert.True(t, decimal.NewFromInt(220).Equal(d.DeliveryValue), "valor sugerido = 110 × 2")

	resp := env.do(t, http.MethodPost, "/api/deliveries/"+d.ID+"/confirm", map[string]interface{}{})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, "SIGNATURE_REQUIRED", errBody.Code)

	resp = env.do(t, http.MethodGet, "/api/deliveries/"+d.ID, nil)
	var still dto.DeliveryResponse
	decode(t, resp, &still)
	assert.Equal(t, "scheduled", still.Status)

	resp = env.do(t, http.MethodPost, "/api/deliveries/"+d.ID+"/confirm", map[string]interface{}{"signature": testSignature})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var done dto.DeliveryResponse
	decode(t, resp, &done)
	assert.Equal(t, "delivered", done.Status)
	assert.Equal(t, "2026-03-10", done.ActualDeliveryDate)
	assert.Equal(t, "16:45", done.ActualDeliveryTime)

	last, ok := env.rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Entrega confirmada!", last.Message)
}

func TestDeliveryScheduleRoute(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	env.createDelivery(t)

	resp := env.do(t, http.MethodGet, "/api/deliveries/schedule?date=2026-03-10", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var sched dto.ScheduleResponse
	decode(t, resp, &sched)
	assert.Equal(t, 1, sched.Total)
	assert.Len(t, sched.Pending, 1)

	resp = env.do(t, http.MethodGet, "/api/deliveries/schedule?date=10-03-2026", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeliveryPhotos(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	d := env.createDelivery(t)

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.Black)
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("photos", "foto.png")
	require.NoError(t, err)
	_, err = fw.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/deliveries/"+d.ID+"/photos", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var withPhoto dto.DeliveryResponse
	decode(t, resp, &withPhoto)
	require.Len(t, withPhoto.Photos, 1)
	assert.True(t, strings.HasPrefix(withPhoto.Photos[0], "data:image/"))

	resp = env.do(t, http.MethodDelete, "/api/deliveries/"+d.ID+"/photos/x", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/deliveries/"+d.ID+"/photos/0", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var without dto.DeliveryResponse
	decode(t, resp, &without)
	assert.Empty(t, without.Photos)
}

func TestDeliveryReportExport(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	env.createDelivery(t)

	resp := env.do(t, http.MethodGet, "/api/reports/deliveries?start_date=2026-03-01&end_date=2026-03-31", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var rep dto.DeliveryReportDTO
	decode(t, resp, &rep)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "10/03/2026", rep.Rows[0].Date)
	assert.Equal(t, "Agendado", rep.Rows[0].StatusLabel)

	resp = env.do(t, http.MethodGet, "/api/reports/deliveries?format=csv", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "relatorio_protocolos_2026-03-10.csv")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Maria")

	resp = env.do(t, http.MethodGet, "/api/reports/expenses?format=docx", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, "format", errBody.Field)

	resp = env.do(t, http.MethodGet, "/api/reports/expenses?start_date=ontem", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNotificationsSince(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/expense-categories", map[string]interface{}{"name": "Combustível"})
	env.do(t, http.MethodPost, "/api/expense-categories", map[string]interface{}{"name": "Pedágio"})

	resp := env.do(t, http.MethodGet, "/api/notifications?after=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Items []notify.Notification `json:"items"`
		Total int                   `json:"total"`
	}
	decode(t, resp, &body)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, uint64(2), body.Items[0].Seq)
}

func TestDashboardSummaryRoute(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var sum dto.DashboardSummaryDTO
	decode(t, resp, &sum)
	assert.Len(t, sum.Last7Days, 7)
	assert.True(t, sum.TodayProfit.IsZero())
}

func TestSignatureRouteRejectsOversizedCanvas(t *testing.T) {
	env := newTestEnv(t)
	strokes := [][]map[string]float64{{{"x": 1, "y": 1}, {"x": 1e12, "y": 1}}}

	resp := env.do(t, http.MethodPost, "/api/signatures", map[string]interface{}{
		"strokes": strokes, "width": 1 << 20, "height": 1 << 20,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, "VALIDATION", errBody.Code)

	resp = env.do(t, http.MethodPost, "/api/signatures", map[string]interface{}{"strokes": strokes})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.SignatureResponse
	decode(t, resp, &out)
	assert.True(t, strings.HasPrefix(out.Signature, "data:image/png;base64,"))
}
