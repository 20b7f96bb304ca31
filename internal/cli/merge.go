package cli

import (
	"github.com/spf13/cobra"

	"github.com/soyunomas/fileorg/internal/engine"
	"github.com/soyunomas/fileorg/internal/hasher"
	"github.com/soyunomas/fileorg/internal/logging"
)

// commonFlags son las opciones compartidas por merge y sort.
type commonFlags struct {
	out      string
	ext      string
	checksum string
	verbose  bool
	jsonOut  bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Directorio de salida (se crea si no existe)")
	cmd.Flags().StringVar(&f.ext, "ext", "", "Solo archivos con esta extensión (ej: jpg)")
	cmd.Flags().StringVar(&f.checksum, "checksum", string(hasher.SHA256), "Checksum para comparar colisiones: sha256 o xxh3")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Muestra progreso y resumen")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Imprime el reporte en JSON por stdout")
	_ = cmd.MarkFlagRequired("out")
}

func (f *commonFlags) options(cmd *cobra.Command) engine.Options {
	log := logging.New(cmd.ErrOrStderr(), f.verbose)
	return engine.Options{
		Log:      &log,
		Ext:      f.ext,
		Checksum: hasher.Algorithm(f.checksum),
		Excludes: []string{".git"},
	}
}

// NewMergeCmd crea el subcomando merge.
func NewMergeCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "merge SOURCE... --out DIR",
		Short: "Combina varios directorios en uno plano",
		Long: `Copia todos los archivos de los directorios SOURCE (recursivamente) a un
único directorio de salida, sin subcarpetas.

Cuando dos archivos tienen el mismo nombre se comparan sus checksums:
  - iguales: es un duplicado y se omite sin aviso
  - distintos: se avisa nombrando ambos archivos y se conserva el primero

Los archivos que ya están en la salida de una ejecución anterior cuentan como
"primeros", así que repetir la misma ejecución no cambia nada.`,
		Example: `  fileorg merge fotos_movil fotos_camara --out todas
  fileorg merge a b c --out salida --ext jpg --verbose`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := engine.NewMerger(flags.options(cmd))
			if err != nil {
				return err
			}
			stats, err := m.Run(args, flags.out)
			if err != nil {
				return err
			}
			return printResult(cmd, "merge", stats, flags)
		},
	}

	flags.register(cmd)
	return cmd
}
