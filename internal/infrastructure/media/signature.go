package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"github.com/jhoicas/deliveryops-api/internal/domain"
)

// Point coordenada de un trazo, en píxeles del lienzo.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke trazo continuo (mouse/touch presionado).
type Stroke []Point

// MaxCanvasSide tope absoluto del lienzo, aunque la configuración pida más.
const MaxCanvasSide = 4096

const penWidth = 2.5

var ink = image.NewUniform(color.NRGBA{R: 0, G: 0, B: 0, A: 255})

// RenderSignature rasteriza los trazos sobre un lienzo blanco y devuelve un data URL PNG.
// Sin ningún punto devuelve ErrSignatureRequired.
func RenderSignature(strokes []Stroke, width, height int) (string, error) {
	if width <= 0 || height <= 0 || width > MaxCanvasSide || height > MaxCanvasSide {
		return "", fmt.Errorf("%w: lienzo %dx%d", domain.ErrInvalidInput, width, height)
	}
	points := 0
	for _, s := range strokes {
		for _, p := range s {
			if !finite(p.X) || !finite(p.Y) {
				return "", fmt.Errorf("%w: coordenada no finita", domain.ErrInvalidInput)
			}
		}
		points += len(s)
	}
	if points == 0 {
		return "", domain.ErrSignatureRequired
	}

	canvas := imaging.New(width, height, color.White)
	pen := newPen(width, height)
	for _, s := range strokes {
		if len(s) == 1 {
			pen.dot(s[0])
			continue
		}
		for i := 1; i < len(s); i++ {
			pen.segment(s[i-1], s[i])
		}
	}
	pen.z.Draw(canvas, canvas.Bounds(), ink, image.Point{})

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return "", fmt.Errorf("codificar firma: %w", err)
	}
	return EncodeDataURL("image/png", buf.Bytes()), nil
}

// pen acumula cada segmento como un polígono en un único rasterizador.
// Todos los polígonos comparten orientación para que los solapes no se cancelen.
type pen struct {
	z    *vector.Rasterizer
	clip [4]float64 // minX, minY, maxX, maxY
}

func newPen(width, height int) *pen {
	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Over
	m := penWidth * 2
	return &pen{z: z, clip: [4]float64{-m, -m, float64(width) + m, float64(height) + m}}
}

func (p *pen) segment(a, b Point) {
	a, b, ok := p.clipSegment(a, b)
	if !ok {
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l < 1e-6 {
		p.dot(a)
		return
	}
	h := penWidth / 2
	nx, ny := -dy/l*h, dx/l*h
	p.polygon(
		Point{a.X + nx, a.Y + ny},
		Point{b.X + nx, b.Y + ny},
		Point{b.X - nx, b.Y - ny},
		Point{a.X - nx, a.Y - ny},
	)
	// extremos redondeados
	p.dot(a)
	p.dot(b)
}

// dot octágono del ancho del pincel.
func (p *pen) dot(c Point) {
	if c.X < p.clip[0] || c.Y < p.clip[1] || c.X > p.clip[2] || c.Y > p.clip[3] {
		return
	}
	r := penWidth / 2
	var pts [8]Point
	for i := range pts {
		// misma orientación que los cuadriláteros de segment
		ang := float64(i) * math.Pi / 4
		pts[i] = Point{c.X + r*math.Cos(ang), c.Y - r*math.Sin(ang)}
	}
	p.polygon(pts[:]...)
}

func (p *pen) polygon(pts ...Point) {
	p.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, q := range pts[1:] {
		p.z.LineTo(float32(q.X), float32(q.Y))
	}
	p.z.ClosePath()
}

// clipSegment recorta el segmento al lienzo (Liang-Barsky) para que el
// rasterizador nunca recorra filas fuera de él.
func (p *pen) clipSegment(a, b Point) (Point, Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - p.clip[0]},
		{dx, p.clip[2] - a.X},
		{-dy, a.Y - p.clip[1]},
		{dy, p.clip[3] - a.Y},
	}
	for _, e := range edges {
		q, r := e[0], e[1]
		if q == 0 {
			if r < 0 {
				return a, b, false
			}
			continue
		}
		t := r / q
		if q < 0 {
			if t > t1 {
				return a, b, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return a, b, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return Point{a.X + t0*dx, a.Y + t0*dy}, Point{a.X + t1*dx, a.Y + t1*dy}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
