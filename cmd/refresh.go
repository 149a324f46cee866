package main

import (
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-score every stored company against the qualification rubric",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, st, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return p.RefreshRelevanceScores(ctx)
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
