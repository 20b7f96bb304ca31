package engine

import "errors"

// Errores de configuración. Cortan la ejecución antes de copiar nada.
var (
	ErrMissingOutput  = errors.New("falta el directorio de salida (--out)")
	ErrNoSources      = errors.New("no hay directorios de origen válidos")
	ErrOutputUnusable = errors.New("el directorio de salida no se puede usar")
)
