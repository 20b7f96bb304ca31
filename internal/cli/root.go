// Package cli define los comandos de fileorg (cobra).
//
// Cada subcomando tiene su constructor NewXCmd. Las opciones se validan en
// engine antes de tocar el disco, así que un error devuelto por RunE es
// siempre de configuración y termina con código distinto de cero.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soyunomas/fileorg/internal/version"
)

// NewRootCmd crea el comando raíz con todos los subcomandos.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fileorg",
		Short: "Organiza archivos personales: combinar directorios y ordenar por fecha",
		Long: `fileorg agrupa dos utilidades de solo copia para organizar archivos:

  - merge: combina varios directorios en uno plano. Si dos archivos se llaman
    igual compara checksums: iguales se omiten, distintos se avisan y se
    conserva el primero.
  - sort: copia los archivos a subdirectorios según su fecha de modificación
    (año, año-mes o año-mes-día).

Los archivos de origen nunca se modifican ni se borran.`,
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	groupFiles := "files"
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFiles,
		Title: "Organización de archivos",
	})

	mergeCmd := NewMergeCmd()
	sortCmd := NewSortCmd()
	mergeCmd.GroupID = groupFiles
	sortCmd.GroupID = groupFiles

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd imprime la versión.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fileorg %s\n", version.Full())
		},
	}
}
