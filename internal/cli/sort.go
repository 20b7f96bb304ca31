package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/soyunomas/fileorg/internal/bucket"
	"github.com/soyunomas/fileorg/internal/engine"
	"github.com/soyunomas/fileorg/internal/report"
)

// NewSortCmd crea el subcomando sort.
func NewSortCmd() *cobra.Command {
	var (
		flags     commonFlags
		groupBy   string
		sep       string
		recursive bool
		utc       bool
	)

	cmd := &cobra.Command{
		Use:   "sort SOURCE --out DIR --groupby y|ym|ymd",
		Short: "Ordena archivos en subdirectorios por fecha de modificación",
		Long: `Copia cada archivo de SOURCE a OUT/<bucket>/<nombre>, donde el bucket sale
de la fecha de modificación del archivo:

  y    2023
  ym   2023-03      (con --sep "" queda 202303)
  ymd  2023-03-14

Por defecto solo se leen los archivos del primer nivel de SOURCE. Las
colisiones dentro de un bucket siguen la misma regla que merge.`,
		Example: `  fileorg sort camara --out por_mes --groupby ym
  fileorg sort camara --out por_dia --groupby ymd --sep "" --recursive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := time.Local
			if utc {
				loc = time.UTC
			}
			s, err := engine.NewSorter(engine.SortOptions{
				Options:     flags.options(cmd),
				Granularity: bucket.Granularity(groupBy),
				Separator:   sep,
				Recursive:   recursive,
				Location:    loc,
			})
			if err != nil {
				return err
			}
			stats, err := s.Run(args[0], flags.out)
			if err != nil {
				return err
			}
			return printResult(cmd, "sort", stats, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&groupBy, "groupby", "g", "", "Agrupar por año (y), mes (ym) o día (ymd)")
	cmd.Flags().StringVar(&sep, "sep", "-", "Separador entre componentes de fecha (puede ser vacío)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Incluir subdirectorios de SOURCE")
	cmd.Flags().BoolVar(&utc, "utc", false, "Interpretar fechas en UTC en vez de la hora local")
	_ = cmd.MarkFlagRequired("groupby")

	return cmd
}

// printResult muestra el resumen con --verbose o el reporte con --json.
func printResult(cmd *cobra.Command, command string, stats *engine.Stats, flags commonFlags) error {
	rep := report.Generate(command, stats)
	if flags.jsonOut {
		return report.PrintJSON(cmd.OutOrStdout(), rep)
	}
	if flags.verbose {
		report.PrintText(cmd.OutOrStdout(), rep)
	}
	return nil
}
