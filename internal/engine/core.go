package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/soyunomas/fileorg/internal/catalog"
	"github.com/soyunomas/fileorg/internal/copier"
	"github.com/soyunomas/fileorg/internal/entities"
	"github.com/soyunomas/fileorg/internal/hasher"
)

// Options comunes a Merger y Sorter.
type Options struct {
	Fs       afero.Fs         // Default: afero.NewOsFs()
	Log      *zerolog.Logger  // Default: descarta todo
	Ext      string           // Solo esta extensión (con o sin punto)
	Checksum hasher.Algorithm // Default: sha256
	Excludes []string         // Nombres de carpetas que no se recorren
}

// normalize rellena defaults y valida. Es un error de configuración si falla.
func (o *Options) normalize() error {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Log == nil {
		nop := zerolog.Nop()
		o.Log = &nop
	}
	o.Ext = strings.TrimPrefix(strings.TrimSpace(o.Ext), ".")

	algo, err := hasher.ParseAlgorithm(string(o.Checksum))
	if err != nil {
		return err
	}
	o.Checksum = algo
	return nil
}

// Stats resume una ejecución.
type Stats struct {
	Sources        []string             `json:"sources"`
	InvalidSources []string             `json:"invalid_sources,omitempty"`
	OutputDir      string               `json:"output_dir"`
	FilesFound     int64                `json:"files_found"`
	Copied         int64                `json:"copied"`
	Duplicates     int64                `json:"duplicates"`
	Conflicts      int64                `json:"conflicts"`
	Failed         int64                `json:"failed"`
	BytesCopied    int64                `json:"bytes_copied"`
	Placements     []entities.Placement `json:"placements"`
	Duration       time.Duration        `json:"duration_ns"`
}

// run lleva el estado de una sola ejecución.
type run struct {
	fs    afero.Fs
	log   *zerolog.Logger
	cat   *catalog.Catalog
	stats *Stats
}

func newRun(opts Options, outDir string) *run {
	return &run{
		fs:    opts.Fs,
		log:   opts.Log,
		cat:   catalog.New(opts.Fs, opts.Checksum),
		stats: &Stats{OutputDir: outDir},
	}
}

// place aplica la política de colisiones a f y copia si el destino está libre.
// Ningún error por archivo sale de aquí: se loguea y se cuenta.
func (r *run) place(f *entities.FileInfo, key, dest string) {
	p := entities.Placement{Source: f, Key: key, Dest: dest}

	decision, owner, err := r.cat.Claim(key, dest, f)
	if owner != nil {
		p.Owner = owner.Path
	}
	if err != nil {
		r.fail(&p, err)
		return
	}

	switch decision {
	case catalog.Place:
		if err := r.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			r.fail(&p, err)
			return
		}
		n, err := copier.Copy(r.fs, f, dest)
		if errors.Is(err, copier.ErrTimesNotPreserved) {
			r.log.Warn().Err(err).Object("file", f).Str("dest", dest).
				Msg("copiado, pero con otra fecha de modificación")
		} else if err != nil {
			r.fail(&p, err)
			return
		}
		r.cat.Record(key, f)
		r.stats.Copied++
		r.stats.BytesCopied += n
		p.Outcome = entities.OutcomeCopied
		r.log.Info().Str("src", f.Path).Str("dest", dest).
			Int64("n", r.stats.Copied).Int64("total", r.stats.FilesFound).
			Msg("copiado")

	case catalog.Duplicate:
		r.stats.Duplicates++
		p.Outcome = entities.OutcomeDuplicate
		r.log.Info().Str("src", f.Path).Str("owner", owner.Path).
			Msg("duplicado idéntico, se omite")

	case catalog.Conflict:
		r.stats.Conflicts++
		p.Outcome = entities.OutcomeConflict
		r.log.Warn().Str("key", key).Object("file", f).
			Msgf("conflicto: checksum distinto para '%s' y '%s'; se conserva el primero", owner.Path, f.Path)
	}

	r.stats.Placements = append(r.stats.Placements, p)
}

func (r *run) fail(p *entities.Placement, err error) {
	r.stats.Failed++
	p.Outcome = entities.OutcomeFailed
	p.Error = err.Error()
	r.stats.Placements = append(r.stats.Placements, *p)
	r.log.Error().Err(err).Object("file", p.Source).Msg("no se pudo procesar, se omite")
}

// scanError es el callback del escáner para archivos ilegibles.
func (r *run) scanError(path string, err error) {
	r.stats.Failed++
	r.log.Error().Err(err).Str("path", path).Msg("no se pudo leer, se omite")
}

// absPath limpia la ruta y la hace absoluta para comparar orígenes y salida.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// isDir dice si p existe y es un directorio.
func isDir(fsys afero.Fs, p string) error {
	info, err := fsys.Stat(p)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: no es un directorio", p)
	}
	return nil
}

// checkSource exige que p sea un directorio que se pueda listar.
func checkSource(fsys afero.Fs, p string) error {
	if err := isDir(fsys, p); err != nil {
		return err
	}
	if _, err := afero.ReadDir(fsys, p); err != nil {
		return fmt.Errorf("%s: no se puede leer: %w", p, err)
	}
	return nil
}

// prepareOutput crea la salida si falta y comprueba que se puede escribir.
func prepareOutput(fsys afero.Fs, outDir string) error {
	info, err := fsys.Stat(outDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := fsys.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputUnusable, err)
		}
	case err != nil:
		return fmt.Errorf("%w: %v", ErrOutputUnusable, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s no es un directorio", ErrOutputUnusable, outDir)
	}

	check, err := afero.TempFile(fsys, outDir, ".fileorg-check-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputUnusable, err)
	}
	name := check.Name()
	_ = check.Close()
	if err := fsys.Remove(name); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputUnusable, err)
	}
	return nil
}
