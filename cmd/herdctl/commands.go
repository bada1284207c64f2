package main

import (
	"github.com/spf13/cobra"

	"github.com/mamadbah2/goatherd/internal/service/reporting"
)

func getReportCmd() *cobra.Command {
	var ready bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Prints the herd summary",
		Long: `Prints the herd summary: managed animals per category, the animals ready
to wean or to serve, and the growth alerts.

Examples:
  herdctl report
  herdctl report --ready
  herdctl report --json > report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := herdSvc.BuildHerdReport(cmd.Context())
			if err != nil {
				return err
			}
			text := reporting.FormatHerdSummary(report)
			if ready {
				text = reporting.FormatReadyLists(report)
			}
			return emit(cmd.OutOrStdout(), report, text)
		},
	}

	cmd.Flags().BoolVar(&ready, "ready", false, "print the weaning, service and alert lists")
	return cmd
}

func getAnimalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "animal <id>",
		Short: "Prints the category and growth of one animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := herdSvc.AnimalGrowth(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), view, reporting.FormatAnimal(view))
		},
	}
}

func getLactationCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "lactation <id>",
		Aliases: []string{"lactations"},
		Short:   "Prints the lactation cycles of one doe",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := herdSvc.AnimalLactations(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), view, reporting.FormatLactations(view))
		},
	}
}
