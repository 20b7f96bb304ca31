package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/soyunomas/fileorg/internal/entities"
)

// Config define las reglas para el escaneo.
type Config struct {
	Ext       string   // Solo archivos con esta extensión (sin punto, puede ser "tar.gz"). Vacío = todos
	Recursive bool     // Si es false solo se leen los archivos directos de la raíz
	Excludes  []string // Nombres de carpetas a ignorar
	SkipPaths []string // Rutas completas a ignorar (ej: el directorio de salida)
}

// ErrorFunc recibe los errores por archivo. El escaneo continúa después.
type ErrorFunc func(path string, err error)

// FileScanner encapsula la lógica de recorrido del sistema de archivos.
type FileScanner struct {
	fs         afero.Fs
	cfg        Config
	excludeMap map[string]struct{} // Optimización O(1)
	skipMap    map[string]struct{}
	dotExt     string
}

// New crea una nueva instancia del escáner con configuración.
func New(fsys afero.Fs, cfg Config) *FileScanner {
	exMap := make(map[string]struct{}, len(cfg.Excludes))
	for _, e := range cfg.Excludes {
		exMap[e] = struct{}{}
	}
	skipMap := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skipMap[filepath.Clean(p)] = struct{}{}
	}

	dotExt := ""
	if ext := strings.TrimPrefix(cfg.Ext, "."); ext != "" {
		dotExt = "." + strings.ToLower(ext)
	}

	return &FileScanner{
		fs:         fsys,
		cfg:        cfg,
		excludeMap: exMap,
		skipMap:    skipMap,
		dotExt:     dotExt,
	}
}

// Scan recorre rootDir en profundidad y devuelve los archivos regulares.
// afero.Walk ordena cada directorio, así que el orden es determinista.
// Solo un fallo sobre la propia raíz se devuelve como error; el resto va a onErr.
func (s *FileScanner) Scan(rootDir string, onErr ErrorFunc) ([]*entities.FileInfo, error) {
	if onErr == nil {
		onErr = func(string, error) {}
	}
	root := filepath.Clean(rootDir)

	if _, err := s.fs.Stat(root); err != nil {
		return nil, err
	}

	var files []*entities.FileInfo
	err := afero.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
		// 1. Errores de acceso (permisos, archivo que desapareció)
		if err != nil {
			if path == root {
				return err
			}
			onErr(path, err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// 2. Directorios: excluidos, ignorados o fuera de alcance
		if info.IsDir() {
			if path == root {
				return nil
			}
			if _, ok := s.skipMap[filepath.Clean(path)]; ok {
				return filepath.SkipDir
			}
			if _, ok := s.excludeMap[info.Name()]; ok {
				return filepath.SkipDir
			}
			if !s.cfg.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		// 3. Enlaces simbólicos: se sigue el destino si es un archivo
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := s.fs.Stat(path)
			if err != nil {
				onErr(path, err)
				return nil
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		// 4. Filtro de extensión: sufijo del nombre, así "tar.gz" también vale
		if s.dotExt != "" && !strings.HasSuffix(strings.ToLower(filepath.Base(path)), s.dotExt) {
			return nil
		}

		files = append(files, &entities.FileInfo{
			Path:    path,
			Name:    filepath.Base(path),
			Root:    root,
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
