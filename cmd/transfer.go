package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/emprendelab/vitrina/internal/listing"
	"github.com/emprendelab/vitrina/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import <glob>",
	Short: "Import ventures from JSON data files",
	Long: `Imports every JSON file matching the glob (** is supported). Each file
holds an array of ventures in the published format. Ventures whose id is
already stored are skipped; malformed files are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		im := &listing.Importer{Store: store, Logger: logger, Progress: progress.NewReporter()}
		summary, err := im.ImportGlob(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d venture(s) from %d file(s), %d skipped\n",
			summary.Imported, summary.Files, summary.Skipped)
		if len(summary.Failed) > 0 {
			return fmt.Errorf("%d file(s) could not be imported: %v", len(summary.Failed), summary.Failed)
		}
		return nil
	},
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every venture as a JSON array",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("creating %s: %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}

		n, err := listing.Export(cmd.Context(), store, w)
		if err != nil {
			return err
		}
		if w != cmd.OutOrStdout() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d venture(s) to %s\n", n, exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
