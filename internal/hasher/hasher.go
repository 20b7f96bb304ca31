package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"
)

// BlockSize optimiza la lectura del disco (32KB es un buen estándar)
const BlockSize = 32 * 1024

// PreHashSize define cuánto leemos para la prueba rápida (4KB)
const PreHashSize = 4 * 1024

// Algorithm identifica el checksum de contenido completo.
type Algorithm string

const (
	SHA256 Algorithm = "sha256" // Default
	XXH3   Algorithm = "xxh3"   // 128 bits, mucho más rápido
)

var ErrUnknownAlgorithm = errors.New("algoritmo de checksum desconocido")

// ParseAlgorithm acepta "sha256" o "xxh3" (sin distinguir mayúsculas).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", SHA256:
		return SHA256, nil
	case XXH3:
		return XXH3, nil
	}
	return "", fmt.Errorf("%w: %q (usa sha256 o xxh3)", ErrUnknownAlgorithm, s)
}

// bufferPool para las lecturas completas
var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, BlockSize)
		return &b
	},
}

// HashFile calcula el checksum completo del archivo y lo devuelve en hex.
// Archivos con los mismos bytes producen el mismo valor sin importar ruta o nombre.
func HashFile(fsys afero.Fs, path string, algo Algorithm) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	bufPtr := bufferPool.Get().(*[]byte)
	buf := *bufPtr
	defer bufferPool.Put(bufPtr)

	switch algo {
	case XXH3:
		h := xxh3.New()
		if _, err := io.CopyBuffer(h, file, buf); err != nil {
			return "", err
		}
		sum := h.Sum128().Bytes()
		return hex.EncodeToString(sum[:]), nil
	case SHA256, "":
		h := sha256.New()
		if _, err := io.CopyBuffer(h, file, buf); err != nil {
			return "", err
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
}

// HashFirstBlock hashea solo los primeros PreHashSize bytes con xxhash.
// Sirve para descartar rápido archivos distintos del mismo tamaño.
func HashFirstBlock(fsys afero.Fs, path string) (uint64, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	buf := make([]byte, PreHashSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, err
	}

	return xxhash.Sum64(buf[:n]), nil
}
