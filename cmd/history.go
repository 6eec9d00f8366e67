package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/spf13/cobra"
)

var historyExportPath string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Saved calculations of the signed-in user",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved calculations, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			u, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			entries, err := deps.History.List(ctx, u.ID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No calculations saved yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTITLE\tGROSS\tNET")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.CreatedAt.Local().Format("Jan 2, 2006 15:04"), e.Title(),
					salary.FormatCurrency(e.Calculation.GrossSalary),
					salary.FormatCurrency(e.Calculation.NetSalary))
			}
			return tw.Flush()
		})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved calculation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			u, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			if err := deps.History.Delete(ctx, u.ID, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Calculation deleted.")
			return nil
		})
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write saved calculations to an xlsx workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			u, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			f, err := os.Create(historyExportPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", historyExportPath, err)
			}

			if err := deps.History.Export(ctx, u.ID, f); err != nil {
				_ = f.Close()
				_ = os.Remove(historyExportPath)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", historyExportPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "History exported to %s.\n", historyExportPath)
			return nil
		})
	},
}

func init() {
	historyExportCmd.Flags().StringVarP(&historyExportPath, "out", "o", "salary-history.xlsx", "output file")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyExportCmd)
}
