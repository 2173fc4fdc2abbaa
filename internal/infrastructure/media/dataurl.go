// Package media codifica firmas y fotos como data URLs ("data:image/...;base64,...")
// utilizables directamente como fuente de imagen, sin archivos externos.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jhoicas/deliveryops-api/internal/domain"
)

const imagePrefix = "data:image/"

// EncodeDataURL arma el data URL base64 para el tipo MIME dado.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsImageDataURL indica si s tiene el prefijo de imagen embebida.
func IsImageDataURL(s string) bool {
	return strings.HasPrefix(s, imagePrefix) && strings.Contains(s, ";base64,")
}

// DecodeDataURL separa el tipo MIME y los bytes de un data URL de imagen.
func DecodeDataURL(s string) (string, []byte, error) {
	if !IsImageDataURL(s) {
		return "", nil, fmt.Errorf("%w: no es un data URL de imagen", domain.ErrInvalidImage)
	}
	header, payload, _ := strings.Cut(strings.TrimPrefix(s, "data:"), ";base64,")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: base64: %v", domain.ErrInvalidImage, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil, fmt.Errorf("%w: imagen vacía", domain.ErrInvalidImage)
	}
	return header, data, nil
}
