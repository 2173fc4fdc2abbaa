package media

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/deliveryops-api/internal/domain"
)

const jpegQuality = 85

// FromUpload convierte un archivo subido en un data URL JPEG. Rechaza lo que no sea imagen
// y reduce el ancho a maxWidth (0 = sin límite) conservando la proporción.
func FromUpload(data []byte, maxWidth int) (string, error) {
	mt := mimetype.Detect(data)
	if !isImageMIME(mt) {
		return "", fmt.Errorf("%w: tipo %s", domain.ErrInvalidImage, mt.String())
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	img = fit(img, maxWidth)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("codificar JPEG: %w", err)
	}
	return EncodeDataURL("image/jpeg", buf.Bytes()), nil
}

func fit(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}
	return imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
}

func isImageMIME(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("image/jpeg") || m.Is("image/png") || m.Is("image/gif") ||
			m.Is("image/bmp") || m.Is("image/tiff") {
			return true
		}
	}
	return false
}
