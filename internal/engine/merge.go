package engine

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/soyunomas/fileorg/internal/scanner"
)

// Merger aplana varios directorios de origen en uno solo de salida.
type Merger struct {
	opts Options
}

// NewMerger valida las opciones. Un error aquí es de configuración.
func NewMerger(opts Options) (*Merger, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	return &Merger{opts: opts}, nil
}

// Run copia cada archivo regular de sources a outDir/<nombre>.
// Solo devuelve error por problemas de configuración, y siempre antes de
// copiar el primer archivo. Los fallos por archivo quedan en Stats.
func (m *Merger) Run(sources []string, outDir string) (*Stats, error) {
	start := time.Now()
	log := m.opts.Log

	if outDir == "" {
		return nil, ErrMissingOutput
	}
	out := absPath(outDir)
	r := newRun(m.opts, out)

	log.Debug().Strs("sources", sources).Str("out", out).Str("ext", m.opts.Ext).
		Str("checksum", string(m.opts.Checksum)).Msg("argumentos")

	// --- PASO 1: VALIDAR ORÍGENES ---
	var valid []string
	for _, src := range sources {
		abs := absPath(src)
		if err := checkSource(m.opts.Fs, abs); err != nil {
			log.Error().Err(err).Str("src", src).Msg("origen inválido, se ignora")
			r.stats.InvalidSources = append(r.stats.InvalidSources, src)
			continue
		}
		valid = append(valid, abs)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoSources, sources)
	}
	r.stats.Sources = valid

	// --- PASO 2: PREPARAR SALIDA ---
	if err := prepareOutput(m.opts.Fs, out); err != nil {
		return nil, err
	}

	// --- PASO 3: RECORRER Y COPIAR ---
	sc := scanner.New(m.opts.Fs, scanner.Config{
		Ext:       m.opts.Ext,
		Recursive: true,
		Excludes:  m.opts.Excludes,
		SkipPaths: []string{out},
	})

	for _, src := range valid {
		log.Info().Str("src", src).Msg("combinando archivos")
		files, err := sc.Scan(src, r.scanError)
		if err != nil {
			// El origen desapareció a mitad de ejecución
			r.scanError(src, err)
			continue
		}
		r.stats.FilesFound += int64(len(files))

		for _, f := range files {
			r.place(f, f.Name, filepath.Join(out, f.Name))
		}
	}

	r.stats.Duration = time.Since(start)
	return r.stats, nil
}
