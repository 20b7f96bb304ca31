package entities

import (
	"io/fs"
	"time"

	"github.com/rs/zerolog"
)

// FileInfo representa un archivo de origen en disco con los metadatos necesarios.
// El Checksum queda vacío hasta que una colisión obliga a calcularlo.
type FileInfo struct {
	Path     string      `json:"path"`
	Name     string      `json:"name"`
	Root     string      `json:"root"`
	Size     int64       `json:"size_bytes"`
	Mode     fs.FileMode `json:"mode"`
	ModTime  time.Time   `json:"mod_time"`
	Checksum string      `json:"checksum,omitempty"`
}

// MarshalZerologObject permite loguear el archivo como objeto estructurado.
func (f *FileInfo) MarshalZerologObject(e *zerolog.Event) {
	e.Str("path", f.Path).Int64("size", f.Size).Time("mod_time", f.ModTime)
	if f.Checksum != "" {
		e.Str("checksum", f.Checksum)
	}
}

// Outcome es el resultado de procesar un archivo.
type Outcome string

const (
	OutcomeCopied    Outcome = "copied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeConflict  Outcome = "conflict"
	OutcomeFailed    Outcome = "failed"
)

// Placement asocia un archivo de origen con su destino dentro del directorio de salida.
type Placement struct {
	Source  *FileInfo `json:"source"`
	Key     string    `json:"key"`  // ruta relativa al directorio de salida
	Dest    string    `json:"dest"` // ruta completa de destino
	Outcome Outcome   `json:"outcome"`
	Owner   string    `json:"owner,omitempty"` // quién ocupaba el destino (duplicados y conflictos)
	Error   string    `json:"error,omitempty"`
}
