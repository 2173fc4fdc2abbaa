package delivery_test

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deliveryops-api/internal/application/delivery"
	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/application/usecase"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/domain/entity"
	"github.com/jhoicas/deliveryops-api/internal/domain/lookup"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/media"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/notify"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/store"
	"github.com/jhoicas/deliveryops-api/pkg/config"
)

const sig = "data:image/png;base64,iVBORw0KGgo="

var loc = time.FixedZone("BRT", -3*60*60)

type fixture struct {
	ctx  context.Context
	cols *store.Collections
	rec  *notify.Recorder
	uc   *delivery.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cols := store.NewCollections(store.NewMemory(), "")
	rec := notify.NewRecorder(50)
	clock := usecase.Clock{
		Now:      func() time.Time { return time.Date(2026, 3, 10, 16, 45, 0, 0, loc) },
		Location: loc,
	}
	proc := media.NewProcessor(config.MediaConfig{MaxPhotoWidth: 100, SignatureWidth: 200, SignatureHeight: 100})
	return &fixture{
		ctx:  context.Background(),
		cols: cols,
		rec:  rec,
		uc:   delivery.NewUseCase(cols.Deliveries, cols.Products, cols.Drivers, cols.Vehicles, proc, rec, clock),
	}
}

func (f *fixture) seedRefs(t *testing.T) (productID, driverID, vehicleID string) {
	t.Helper()
	p := entity.Product{ID: "p1", Name: "Gás P13", Description: "Botijão 13kg", DefaultValue: decimal.NewFromInt(110)}
	d := entity.Driver{ID: "d1", Name: "João"}
	v := entity.Vehicle{ID: "v1", Name: "Caminhão", Plate: "ABC1D23", Compartments: []entity.Compartment{{ID: "c1", Name: "Baú"}}}
	require.NoError(t, f.cols.Products.Create(f.ctx, p))
	require.NoError(t, f.cols.Drivers.Create(f.ctx, d))
	require.NoError(t, f.cols.Vehicles.Create(f.ctx, v))
	return p.ID, d.ID, v.ID
}

func (f *fixture) create(t *testing.T, date, hhmm string) *dto.DeliveryResponse {
	t.Helper()
	out, err := f.uc.Create(f.ctx, dto.CreateDeliveryRequest{
		ClientName:   "Maria",
		Products:     []dto.DeliveryProductRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(2), CompartmentID: "c1"}},
		DeliveryDate: date,
		DeliveryTime: hhmm,
		DriverID:     "d1",
		VehicleID:    "v1",
	})
	require.NoError(t, err)
	return out
}

func TestCreate_FillsLinesFromCatalogAndSuggestsValue(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)

	out := f.create(t, "2026-03-10", "09:00")

	assert.Equal(t, string(entity.StatusScheduled), out.Status)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Gás P13", out.Products[0].ProductName)
	assert.Equal(t, "Botijão 13kg", out.Products[0].Description)
	assert.Equal(t, "Baú", out.Products[0].Compartment)
	assert.True(t, out.DeliveryValue.Equal(decimal.NewFromInt(220)), out.DeliveryValue.String())
	assert.Equal(t, "João", out.Driver)
	assert.Equal(t, "Caminhão (ABC1D23)", out.Vehicle)
	assert.Equal(t, "2026-03-10", out.DeliveryDate)

	last, _ := f.rec.Last()
	assert.Equal(t, ports.NotifySuccess, last.Kind)
}

func TestCreate_RequiresDescribedLineDriverAndVehicle(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(f.ctx, dto.CreateDeliveryRequest{
		ClientName: "Maria",
		Products:   []dto.DeliveryProductRequest{{ProductID: "unknown"}},
		DriverID:   "d1",
		VehicleID:  "v1",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(f.ctx, dto.CreateDeliveryRequest{
		ClientName: "Maria",
		Products:   []dto.DeliveryProductRequest{{Description: "avulso"}},
		VehicleID:  "v1",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.uc.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	last, _ := f.rec.Last()
	assert.Equal(t, ports.NotifyError, last.Kind)
}

func TestConfirm_WithoutSignatureKeepsScheduled(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)
	d := f.create(t, "2026-03-10", "09:00")

	_, err := f.uc.Confirm(f.ctx, d.ID, dto.ConfirmDeliveryRequest{Photos: []string{sig}})
	require.ErrorIs(t, err, domain.ErrSignatureRequired)

	got, err := f.uc.GetByID(f.ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusScheduled), got.Status)
	assert.Empty(t, got.Signature)
	assert.Empty(t, got.Photos)
	assert.Empty(t, got.ActualDeliveryDate)

	last, _ := f.rec.Last()
	assert.Equal(t, "Por favor, colete a assinatura do cliente", last.Message)
}

func TestConfirm_RejectsNonImageSignature(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)
	d := f.create(t, "2026-03-10", "09:00")

	_, err := f.uc.Confirm(f.ctx, d.ID, dto.ConfirmDeliveryRequest{Signature: "assinado"})
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestConfirm_MarksDeliveredAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)
	d := f.create(t, "2026-03-10", "09:00")
	notes := "Entregue ao porteiro"
	in := dto.ConfirmDeliveryRequest{Signature: sig, Photos: []string{sig}, Notes: &notes}

	first, err := f.uc.Confirm(f.ctx, d.ID, in)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDelivered), first.Status)
	assert.Equal(t, "2026-03-10", first.ActualDeliveryDate)
	assert.Equal(t, "16:45", first.ActualDeliveryTime)
	assert.Equal(t, sig, first.Signature)
	assert.Equal(t, []string{sig}, first.Photos)
	assert.Equal(t, notes, first.Notes)

	second, err := f.uc.Confirm(f.ctx, d.ID, in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConfirm_FromStrokes(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)
	d := f.create(t, "2026-03-10", "09:00")

	out, err := f.uc.Confirm(f.ctx, d.ID, dto.ConfirmDeliveryRequest{
		Strokes:            [][]dto.PointDTO{{{X: 5, Y: 5}, {X: 150, Y: 80}}},
		ActualDeliveryDate: "2026-03-11",
		ActualDeliveryTime: "08:15",
	})
	require.NoError(t, err)
	assert.True(t, media.IsImageDataURL(out.Signature))
	assert.Equal(t, "2026-03-11", out.ActualDeliveryDate)
	assert.Equal(t, "08:15", out.ActualDeliveryTime)
}

func TestConfirm_UnknownDelivery(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Confirm(f.ctx, "nope", dto.ConfirmDeliveryRequest{Signature: sig})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSchedule_SplitsByStatusAndSortsByTime(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)
	late := f.create(t, "2026-03-10", "15:00")
	early := f.create(t, "2026-03-10", "08:30")
	done := f.create(t, "2026-03-10", "11:00")
	f.create(t, "2026-03-11", "08:00")
	_, err := f.uc.Confirm(f.ctx, done.ID, dto.ConfirmDeliveryRequest{Signature: sig})
	require.NoError(t, err)

	s, err := f.uc.Schedule(f.ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", s.Date)
	assert.Equal(t, 3, s.Total)
	require.Len(t, s.Pending, 2)
	assert.Equal(t, early.ID, s.Pending[0].ID)
	assert.Equal(t, late.ID, s.Pending[1].ID)
	require.Len(t, s.Completed, 1)
	assert.Equal(t, done.ID, s.Completed[0].ID)
}

func TestDanglingReferencesRenderPlaceholders(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)
	d := f.create(t, "2026-03-10", "09:00")

	require.NoError(t, f.cols.Drivers.Delete(f.ctx, "d1"))
	require.NoError(t, f.cols.Vehicles.Delete(f.ctx, "v1"))
	require.NoError(t, f.cols.Products.Delete(f.ctx, "p1"))

	got, err := f.uc.GetByID(f.ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, lookup.DriverNotFound, got.Driver)
	assert.Equal(t, lookup.VehicleNotFound, got.Vehicle)
	assert.Equal(t, lookup.CompartmentNotFound, got.Products[0].Compartment)
	assert.Equal(t, "Gás P13", got.Products[0].ProductName)
}

func TestPhotos_AddAndRemove(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)
	d := f.create(t, "2026-03-10", "09:00")

	img := imaging.New(300, 200, color.NRGBA{R: 10, G: 120, B: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := f.uc.AddPhotos(f.ctx, d.ID, [][]byte{buf.Bytes(), buf.Bytes()})
	require.NoError(t, err)
	require.Len(t, out.Photos, 2)
	assert.True(t, media.IsImageDataURL(out.Photos[0]))

	_, err = f.uc.AddPhotos(f.ctx, d.ID, [][]byte{[]byte("not an image")})
	require.ErrorIs(t, err, domain.ErrInvalidImage)

	out, err = f.uc.RemovePhoto(f.ctx, d.ID, 0)
	require.NoError(t, err)
	assert.Len(t, out.Photos, 1)

	_, err = f.uc.RemovePhoto(f.ctx, d.ID, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_DoesNotTouchStatus(t *testing.T) {
	f := newFixture(t)
	f.seedRefs(t)
	d := f.create(t, "2026-03-10", "09:00")
	addr := "Rua das Flores, 12"
	date := "2026-03-12"

	out, err := f.uc.Update(f.ctx, d.ID, dto.UpdateDeliveryRequest{Address: &addr, DeliveryDate: &date})
	require.NoError(t, err)
	assert.Equal(t, addr, out.Address)
	assert.Equal(t, date, out.DeliveryDate)
	assert.Equal(t, string(entity.StatusScheduled), out.Status)
	assert.True(t, out.DeliveryValue.Equal(decimal.NewFromInt(220)))
}
