package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/soyunomas/fileorg/internal/engine"
	"github.com/soyunomas/fileorg/internal/entities"
	"github.com/soyunomas/fileorg/internal/utils"
)

// --- ESTRUCTURAS PARA EL REPORTE FINAL ---

type Report struct {
	Metadata  Metadata   `json:"metadata"`
	Summary   Summary    `json:"summary"`
	Conflicts []Conflict `json:"conflicts"`
	Failures  []Failure  `json:"failures"`
}

type Metadata struct {
	Command   string    `json:"command"`
	Sources   []string  `json:"sources"`
	OutputDir string    `json:"output_dir"`
	Timestamp time.Time `json:"timestamp"`
	Duration  string    `json:"duration_human"`
}

type Summary struct {
	FilesFound       int64  `json:"files_found"`
	Copied           int64  `json:"copied"`
	Duplicates       int64  `json:"duplicates"`
	Conflicts        int64  `json:"conflicts"`
	Failed           int64  `json:"failed"`
	BytesCopied      int64  `json:"bytes_copied"`
	BytesCopiedHuman string `json:"bytes_copied_human"`
}

// Conflict: mismo destino, contenido distinto. Kept es el que se quedó.
type Conflict struct {
	Key     string `json:"key"`
	Kept    string `json:"kept"`
	Skipped string `json:"skipped"`
}

type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Generate construye el reporte a partir de las estadísticas de una ejecución.
func Generate(command string, stats *engine.Stats) Report {
	rep := Report{
		Metadata: Metadata{
			Command:   command,
			Sources:   stats.Sources,
			OutputDir: stats.OutputDir,
			Timestamp: time.Now(),
			Duration:  stats.Duration.String(),
		},
		Summary: Summary{
			FilesFound:       stats.FilesFound,
			Copied:           stats.Copied,
			Duplicates:       stats.Duplicates,
			Conflicts:        stats.Conflicts,
			Failed:           stats.Failed,
			BytesCopied:      stats.BytesCopied,
			BytesCopiedHuman: utils.ByteCountDecimal(stats.BytesCopied),
		},
		Conflicts: []Conflict{},
		Failures:  []Failure{},
	}

	for _, p := range stats.Placements {
		switch p.Outcome {
		case entities.OutcomeConflict:
			rep.Conflicts = append(rep.Conflicts, Conflict{Key: p.Key, Kept: p.Owner, Skipped: p.Source.Path})
		case entities.OutcomeFailed:
			rep.Failures = append(rep.Failures, Failure{Path: p.Source.Path, Error: p.Error})
		}
	}
	return rep
}

// PrintText escribe el resumen legible de la ejecución.
func PrintText(w io.Writer, r Report) {
	s := r.Summary
	fmt.Fprintln(w, "------- Resumen -------")
	fmt.Fprintf(w, "📂 %d archivos encontrados en %d directorios -> %s\n", s.FilesFound, len(r.Metadata.Sources), r.Metadata.OutputDir)
	fmt.Fprintf(w, "✅ Copiados: %d (%s)\n", s.Copied, s.BytesCopiedHuman)
	fmt.Fprintf(w, "♻️  Duplicados omitidos: %d\n", s.Duplicates)
	fmt.Fprintf(w, "⚠️  Conflictos (checksum distinto): %d\n", s.Conflicts)
	if s.Failed > 0 {
		fmt.Fprintf(w, "❌ Fallidos: %d\n", s.Failed)
	}
	fmt.Fprintf(w, "⏱️  Duración: %s\n", r.Metadata.Duration)
}

// PrintJSON escribe el reporte indentado.
func PrintJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
