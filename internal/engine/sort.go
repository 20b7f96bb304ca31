package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/soyunomas/fileorg/internal/bucket"
	"github.com/soyunomas/fileorg/internal/scanner"
)

// SortOptions extiende Options con la forma de los buckets.
type SortOptions struct {
	Options
	Granularity bucket.Granularity
	Separator   string         // Entre componentes de fecha. Puede ser ""
	Recursive   bool           // Default: solo el primer nivel del origen
	Location    *time.Location // Zona para interpretar ModTime. Default: time.Local
}

// Sorter reparte archivos en subdirectorios por fecha de modificación.
type Sorter struct {
	opts SortOptions
}

// NewSorter valida las opciones. Un error aquí es de configuración.
func NewSorter(opts SortOptions) (*Sorter, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	g, err := bucket.ParseGranularity(string(opts.Granularity))
	if err != nil {
		return nil, err
	}
	opts.Granularity = g
	if err := bucket.ValidateSeparator(opts.Separator); err != nil {
		return nil, err
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Sorter{opts: opts}, nil
}

// Label es el bucket de un instante con la configuración de este Sorter.
func (s *Sorter) Label(t time.Time) string {
	return bucket.Label(t.In(s.opts.Location), s.opts.Granularity, s.opts.Separator)
}

// Run copia cada archivo de source a outDir/<bucket>/<nombre>.
func (s *Sorter) Run(source, outDir string) (*Stats, error) {
	start := time.Now()
	log := s.opts.Log

	if outDir == "" {
		return nil, ErrMissingOutput
	}
	out := absPath(outDir)
	src := absPath(source)
	r := newRun(s.opts.Options, out)

	log.Debug().Str("source", src).Str("out", out).
		Str("groupby", string(s.opts.Granularity)).Str("sep", s.opts.Separator).
		Bool("recursive", s.opts.Recursive).Str("tz", s.opts.Location.String()).
		Msg("argumentos")

	if err := checkSource(s.opts.Fs, src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSources, err)
	}
	r.stats.Sources = []string{src}

	if err := prepareOutput(s.opts.Fs, out); err != nil {
		return nil, err
	}

	sc := scanner.New(s.opts.Fs, scanner.Config{
		Ext:       s.opts.Ext,
		Recursive: s.opts.Recursive,
		Excludes:  s.opts.Excludes,
		SkipPaths: []string{out},
	})
	files, err := sc.Scan(src, r.scanError)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSources, err)
	}
	r.stats.FilesFound = int64(len(files))

	for _, f := range files {
		if f.ModTime.IsZero() {
			r.scanError(f.Path, errors.New("fecha de modificación no disponible"))
			continue
		}
		key := filepath.Join(s.Label(f.ModTime), f.Name)
		if !filepath.IsLocal(key) {
			r.scanError(f.Path, fmt.Errorf("%w: %s", bucket.ErrInvalidSeparator, key))
			continue
		}
		r.place(f, key, filepath.Join(out, key))
	}

	r.stats.Duration = time.Since(start)
	return r.stats, nil
}
