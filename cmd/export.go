package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/pipeline"
)

var (
	exportDir    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export current store contents without running the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if exportFormat != pipeline.FormatCSV && exportFormat != pipeline.FormatXLSX {
			return eris.Errorf("unknown export format %q", exportFormat)
		}

		p, st, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return p.ExportAll(ctx, exportDir, exportFormat)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "output-dir", "o", "./output", "directory for export files")
	exportCmd.Flags().StringVar(&exportFormat, "format", pipeline.FormatCSV, "export format: csv or xlsx")
	rootCmd.AddCommand(exportCmd)
}
