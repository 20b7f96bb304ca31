// Package catalog lleva el registro de qué archivo ocupa cada destino.
//
// La política es "el primero gana": un archivo con el mismo destino y el
// mismo contenido es un duplicado inofensivo; con contenido distinto es un
// conflicto que se reporta sin sobrescribir al primero.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/soyunomas/fileorg/internal/entities"
	"github.com/soyunomas/fileorg/internal/hasher"
)

// Decision indica qué hacer con un candidato.
type Decision int

const (
	Place     Decision = iota // Destino libre: copiar
	Duplicate                 // Mismo contenido que el dueño: saltar
	Conflict                  // Contenido distinto: avisar y saltar
)

func (d Decision) String() string {
	switch d {
	case Place:
		return "place"
	case Duplicate:
		return "duplicate"
	case Conflict:
		return "conflict"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

var ErrDestIsDir = errors.New("el destino existe y es un directorio")

// Catalog mapea claves de destino (ruta relativa a la salida) al archivo
// que las ocupa. No es seguro para uso concurrente.
type Catalog struct {
	fs      afero.Fs
	algo    hasher.Algorithm
	entries map[string]*entities.FileInfo
}

// New crea un catálogo vacío.
func New(fsys afero.Fs, algo hasher.Algorithm) *Catalog {
	return &Catalog{
		fs:      fsys,
		algo:    algo,
		entries: make(map[string]*entities.FileInfo),
	}
}

// Claim decide qué hacer con f para la clave key, cuyo destino real es dest.
// Si la clave es nueva pero dest ya existe en disco (ejecución anterior),
// ese archivo pasa a ser el dueño. El primer origen idéntico a él lo
// reemplaza como dueño, así los conflictos posteriores nombran al origen y
// no a la copia. Devuelve también al dueño que decidió el resultado.
// Con Place el llamador debe copiar y luego llamar a Record.
func (c *Catalog) Claim(key, dest string, f *entities.FileInfo) (Decision, *entities.FileInfo, error) {
	owner, ok := c.entries[key]
	if !ok {
		existing, err := c.seed(dest)
		if err != nil {
			return Place, nil, err
		}
		if existing == nil {
			return Place, nil, nil
		}
		c.entries[key] = existing
		owner = existing
	}

	same, err := c.sameContent(owner, f)
	if err != nil {
		return Conflict, owner, err
	}
	if same {
		if owner.Path == dest && f.Path != dest {
			c.entries[key] = f
		}
		return Duplicate, owner, nil
	}
	return Conflict, owner, nil
}

// Record registra a f como dueño de key tras copiarlo.
func (c *Catalog) Record(key string, f *entities.FileInfo) {
	c.entries[key] = f
}

// seed mira si dest ya existe. Devuelve nil si está libre.
func (c *Catalog) seed(dest string) (*entities.FileInfo, error) {
	info, err := c.fs.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDestIsDir, dest)
	}
	return &entities.FileInfo{
		Path:    dest,
		Name:    filepath.Base(dest),
		Root:    filepath.Dir(dest),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}, nil
}

// sameContent compara por etapas: tamaño, primer bloque y checksum completo.
// Las etapas baratas solo pueden concluir "distinto", así que el resultado es
// el mismo que comparar checksums directamente.
func (c *Catalog) sameContent(a, b *entities.FileInfo) (bool, error) {
	if a.Path == b.Path {
		return true, nil
	}
	if a.Size != b.Size {
		return false, nil
	}
	if a.Checksum == "" || b.Checksum == "" {
		ha, err := hasher.HashFirstBlock(c.fs, a.Path)
		if err != nil {
			return false, err
		}
		hb, err := hasher.HashFirstBlock(c.fs, b.Path)
		if err != nil {
			return false, err
		}
		if ha != hb {
			return false, nil
		}
	}

	sumA, err := c.checksum(a)
	if err != nil {
		return false, err
	}
	sumB, err := c.checksum(b)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}

// checksum calcula una sola vez y lo guarda en el FileInfo.
func (c *Catalog) checksum(f *entities.FileInfo) (string, error) {
	if f.Checksum != "" {
		return f.Checksum, nil
	}
	sum, err := hasher.HashFile(c.fs, f.Path, c.algo)
	if err != nil {
		return "", err
	}
	f.Checksum = sum
	return sum, nil
}
