package delivery

import "github.com/jhoicas/deliveryops-api/internal/application/dto"

// MediaProcessor puerto de salida para fotos y firmas (codificadas como data URL).
type MediaProcessor interface {
	// PhotoFromUpload valida que sea imagen, la reduce y la devuelve como data URL JPEG.
	PhotoFromUpload(data []byte) (string, error)
	// SignatureFromStrokes rasteriza los trazos; width/height <= 0 usan el tamaño configurado.
	SignatureFromStrokes(strokes [][]dto.PointDTO, width, height int) (string, error)
	// IsImage indica si el texto es un data URL de imagen.
	IsImage(dataURL string) bool
}
