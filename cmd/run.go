package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/pipeline"
)

var runOpts = pipeline.Options{}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full lead-generation pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if runOpts.Format != pipeline.FormatCSV && runOpts.Format != pipeline.FormatXLSX {
			return eris.Errorf("unknown export format %q", runOpts.Format)
		}

		p, st, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return p.Run(ctx, runOpts)
	},
}

func init() {
	runCmd.Flags().IntVarP(&runOpts.QueryCount, "queries", "q", 5, "number of AI-generated search queries")
	runCmd.Flags().IntVarP(&runOpts.ResultsPerQuery, "results", "r", 10, "search results per query")
	runCmd.Flags().StringVarP(&runOpts.OutputDir, "output-dir", "o", "./output", "directory for export files")
	runCmd.Flags().Float64Var(&runOpts.RelevanceThreshold, "relevance", 0.5, "minimum person score for outreach drafting")
	runCmd.Flags().BoolVar(&runOpts.UpdateRelevance, "update-relevance", false, "re-score all stored companies unconditionally")
	runCmd.Flags().BoolVar(&runOpts.SkipLeads, "skip-leads", false, "skip lead discovery")
	runCmd.Flags().BoolVar(&runOpts.SkipCompanies, "skip-companies", false, "skip company discovery")
	runCmd.Flags().BoolVar(&runOpts.SkipExecutives, "skip-executives", false, "skip decision-maker discovery")
	runCmd.Flags().BoolVar(&runOpts.SkipMessages, "skip-messages", false, "skip outreach drafting")
	runCmd.Flags().StringVar(&runOpts.Format, "format", pipeline.FormatCSV, "export format: csv or xlsx")
	rootCmd.AddCommand(runCmd)
}
