package media

import (
	"fmt"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/domain"
	"github.com/jhoicas/deliveryops-api/pkg/config"
)

// Processor adaptador de fotos y firmas con los límites de configuración.
type Processor struct {
	maxPhotoWidth int
	sigWidth      int
	sigHeight     int
	maxSide       int
}

// NewProcessor construye el adaptador a partir de MediaConfig.
func NewProcessor(cfg config.MediaConfig) *Processor {
	p := &Processor{maxPhotoWidth: cfg.MaxPhotoWidth, sigWidth: cfg.SignatureWidth, sigHeight: cfg.SignatureHeight}
	if p.sigWidth <= 0 {
		p.sigWidth = 400
	}
	if p.sigHeight <= 0 {
		p.sigHeight = 200
	}
	p.maxSide = cfg.MaxSignatureSide
	if p.maxSide <= 0 || p.maxSide > MaxCanvasSide {
		p.maxSide = MaxCanvasSide
	}
	return p
}

func (p *Processor) PhotoFromUpload(data []byte) (string, error) {
	return FromUpload(data, p.maxPhotoWidth)
}

func (p *Processor) SignatureFromStrokes(strokes [][]dto.PointDTO, width, height int) (string, error) {
	if width <= 0 {
		width = p.sigWidth
	}
	if height <= 0 {
		height = p.sigHeight
	}
	if width > p.maxSide || height > p.maxSide {
		return "", fmt.Errorf("%w: lienzo %dx%d supera el máximo %d", domain.ErrInvalidInput, width, height, p.maxSide)
	}
	converted := make([]Stroke, 0, len(strokes))
	for _, s := range strokes {
		st := make(Stroke, 0, len(s))
		for _, pt := range s {
			st = append(st, Point{X: pt.X, Y: pt.Y})
		}
		converted = append(converted, st)
	}
	return RenderSignature(converted, width, height)
}

// IsImage exige prefijo de imagen y un payload base64 válido y no vacío.
func (p *Processor) IsImage(dataURL string) bool {
	_, _, err := DecodeDataURL(dataURL)
	return err == nil
}
