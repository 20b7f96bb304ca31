package copier

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/soyunomas/fileorg/internal/entities"
)

// BlockSize del buffer de copia
const BlockSize = 32 * 1024

// tempPattern nombra los archivos a medio copiar dentro del destino.
const tempPattern = ".fileorg-*.tmp"

// ErrTimesNotPreserved indica que la copia quedó completa en su destino pero
// sin la fecha de modificación del origen.
var ErrTimesNotPreserved = errors.New("copiado sin conservar la fecha")

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, BlockSize)
		return &b
	},
}

// Copy copia src en dest pasando por un temporal en el mismo directorio.
// Conserva los bits de permiso y la fecha de modificación del origen.
// El origen nunca se modifica. Si algo falla el temporal se borra.
// Si solo falla la fecha, dest ya está completo y el error es
// ErrTimesNotPreserved.
func Copy(fsys afero.Fs, src *entities.FileInfo, dest string) (written int64, err error) {
	in, err := fsys.Open(src.Path)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	tmp, err := afero.TempFile(fsys, filepath.Dir(dest), tempPattern)
	if err != nil {
		return 0, fmt.Errorf("creando temporal: %w", err)
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if err != nil && !renamed {
			_ = tmp.Close()
			_ = fsys.Remove(tmpName)
		}
	}()

	bufPtr := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufPtr)

	written, err = io.CopyBuffer(tmp, in, *bufPtr)
	if err != nil {
		return written, err
	}
	if err = tmp.Sync(); err != nil {
		return written, err
	}
	if err = tmp.Close(); err != nil {
		return written, err
	}

	if err = fsys.Chmod(tmpName, src.Mode.Perm()); err != nil {
		return written, err
	}
	if err = fsys.Rename(tmpName, dest); err != nil {
		return written, err
	}
	renamed = true

	// Después del rename: algunos FS tocan la fecha al renombrar
	if err = fsys.Chtimes(dest, src.ModTime, src.ModTime); err != nil {
		return written, fmt.Errorf("%w: %v", ErrTimesNotPreserved, err)
	}
	return written, nil
}
