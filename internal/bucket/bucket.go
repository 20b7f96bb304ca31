// Package bucket convierte fechas de modificación en nombres de carpeta.
package bucket

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Granularity es la precisión de fecha usada para agrupar.
type Granularity string

const (
	Year      Granularity = "y"
	YearMonth Granularity = "ym"
	YearDay   Granularity = "ymd"
)

var (
	ErrInvalidGranularity = errors.New("granularidad inválida")
	ErrInvalidSeparator   = errors.New("separador inválido")
)

// ParseGranularity acepta y, ym o ymd.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Year, YearMonth, YearDay:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q (usa y, ym o ymd)", ErrInvalidGranularity, s)
}

// Label devuelve el nombre del bucket para t. Es una función pura:
// misma fecha, granularidad y separador dan siempre la misma etiqueta.
// t se usa en su propia zona horaria; el llamador decide cuál.
func Label(t time.Time, g Granularity, sep string) string {
	year := fmt.Sprintf("%04d", t.Year())
	month := fmt.Sprintf("%02d", int(t.Month()))
	day := fmt.Sprintf("%02d", t.Day())

	switch g {
	case Year:
		return year
	case YearMonth:
		return year + sep + month
	default:
		return year + sep + month + sep + day
	}
}

// ValidateSeparator rechaza separadores que convierten la etiqueta en una
// ruta con "." o ".." (por ejemplo "/../"), que sacaría los buckets del
// directorio de salida. Un separador vacío o "/" es válido.
func ValidateSeparator(sep string) error {
	sample := Label(time.Date(2000, time.January, 2, 0, 0, 0, 0, time.UTC), YearDay, sep)
	parts := strings.FieldsFunc(sample, func(r rune) bool {
		return r == '/' || r == os.PathSeparator
	})
	for _, part := range parts {
		if part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidSeparator, sep)
		}
	}
	return nil
}
