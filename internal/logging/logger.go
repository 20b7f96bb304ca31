// Package logging construye el logger de diagnóstico (zerolog) de fileorg.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New crea un logger de consola sobre w. Sin verbose solo pasan avisos y
// errores; con verbose también el progreso (info) y el detalle (debug).
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !colorEnabled(w),
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
