package media_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/media"
	"github.com/jhoicas/deliveryops-api/pkg/config"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderSignature_ProducesDecodablePNG(t *testing.T) {
	strokes := []media.Stroke{
		{{X: 10, Y: 10}, {X: 90, Y: 40}, {X: 120, Y: 80}},
		{{X: 50, Y: 50}},
	}

	dataURL, err := media.RenderSignature(strokes, 200, 100)
	require.NoError(t, err)
	assert.True(t, media.IsImageDataURL(dataURL))

	mime, data, err := media.DecodeDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())

	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Less(t, r+g+b, uint32(0xffff*3/2), "el inicio del trazo debe estar entintado")
	r, g, b, _ = img.At(190, 5).RGBA()
	assert.Equal(t, uint32(0xffff*3), r+g+b, "fuera del trazo el lienzo es blanco")
}

func TestRenderSignature_FarCoordinatesAreClipped(t *testing.T) {
	strokes := []media.Stroke{
		{{X: 0, Y: 20}, {X: 1e12, Y: 20}},
		{{X: -1e15, Y: -1e15}, {X: 1e15, Y: 1e15}},
		{{X: 5e9, Y: -3e9}},
	}

	done := make(chan struct{})
	var (
		dataURL string
		err     error
	)
	go func() {
		defer close(done)
		dataURL, err = media.RenderSignature(strokes, 200, 100)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("la rasterización no terminó con coordenadas fuera del lienzo")
	}
	require.NoError(t, err)

	_, data, err := media.DecodeDataURL(dataURL)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	r, g, b, _ := img.At(150, 20).RGBA()
	assert.Less(t, r+g+b, uint32(0xffff*3/2), "el tramo visible del trazo horizontal se dibuja")
	r, g, b, _ = img.At(50, 50).RGBA()
	assert.Less(t, r+g+b, uint32(0xffff*3/2), "la diagonal cruza el lienzo")
}

func TestRenderSignature_RejectsNonFiniteAndHugeCanvas(t *testing.T) {
	_, err := media.RenderSignature([]media.Stroke{{{X: math.NaN(), Y: 1}, {X: 2, Y: 2}}}, 200, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = media.RenderSignature([]media.Stroke{{{X: 1, Y: 1}, {X: math.Inf(1), Y: 2}}}, 200, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = media.RenderSignature([]media.Stroke{{{X: 1, Y: 1}}}, media.MaxCanvasSide+1, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = media.RenderSignature([]media.Stroke{{{X: 1, Y: 1}}}, 100, 1<<30)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessor_CapsRequestedCanvas(t *testing.T) {
	p := media.NewProcessor(config.MediaConfig{SignatureWidth: 120, SignatureHeight: 60, MaxSignatureSide: 500})
	strokes := [][]dto.PointDTO{{{X: 1, Y: 1}, {X: 10, Y: 10}}}

	_, err := p.SignatureFromStrokes(strokes, 501, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.SignatureFromStrokes(strokes, 100, 1<<31-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sig, err := p.SignatureFromStrokes(strokes, 500, 500)
	require.NoError(t, err)
	assert.True(t, p.IsImage(sig))
}

func TestRenderSignature_EmptyIsRejected(t *testing.T) {
	_, err := media.RenderSignature(nil, 200, 100)
	assert.ErrorIs(t, err, domain.ErrSignatureRequired)

	_, err = media.RenderSignature([]media.Stroke{{}}, 200, 100)
	assert.ErrorIs(t, err, domain.ErrSignatureRequired)
}

func TestFromUpload_DownsizesAndEncodesJPEG(t *testing.T) {
	dataURL, err := media.FromUpload(pngBytes(t, 800, 400), 200)
	require.NoError(t, err)

	mime, data, err := media.DecodeDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestFromUpload_RejectsNonImages(t *testing.T) {
	_, err := media.FromUpload([]byte("Cliente,Valor\nA,1\n"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	_, _, err := media.DecodeDataURL("https://example.com/x.png")
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	_, _, err = media.DecodeDataURL("data:image/png;base64,!!!")
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestProcessor_UsesConfiguredCanvas(t *testing.T) {
	p := media.NewProcessor(config.MediaConfig{MaxPhotoWidth: 64, SignatureWidth: 120, SignatureHeight: 60})

	sig, err := p.SignatureFromStrokes([][]dto.PointDTO{{{X: 1, Y: 1}, {X: 100, Y: 50}}}, 0, 0)
	require.NoError(t, err)
	_, data, err := media.DecodeDataURL(sig)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 60), img.Bounds())

	_, err = p.SignatureFromStrokes(nil, 0, 0)
	assert.ErrorIs(t, err, domain.ErrSignatureRequired)

	photo, err := p.PhotoFromUpload(pngBytes(t, 300, 150))
	require.NoError(t, err)
	assert.True(t, p.IsImage(photo))
	assert.False(t, p.IsImage("https://example.com/a.png"))
}
