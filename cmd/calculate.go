package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rateFlags struct {
	tax, retirement, insurance float64
}

func (r *rateFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&r.tax, "tax", 0, "tax rate in percent (default from config)")
	fs.Float64Var(&r.retirement, "retirement", 0, "retirement rate in percent (default from config)")
	fs.Float64Var(&r.insurance, "insurance", 0, "insurance rate in percent (default from config)")
}

// resolve overlays the flags the user actually set on defaults. It returns
// nil when none were set.
func (r *rateFlags) resolve(fs *pflag.FlagSet, defaults salary.DeductionRates) *salary.DeductionRates {
	if !fs.Changed("tax") && !fs.Changed("retirement") && !fs.Changed("insurance") {
		return nil
	}
	rates := defaults
	if fs.Changed("tax") {
		rates.Tax = decimal.NewFromFloat(r.tax)
	}
	if fs.Changed("retirement") {
		rates.Retirement = decimal.NewFromFloat(r.retirement)
	}
	if fs.Changed("insurance") {
		rates.Insurance = decimal.NewFromFloat(r.insurance)
	}
	return &rates
}

var (
	calcRates rateFlags
	calcGross float64
	calcDaily float64
	calcDays  int
	calcSave  bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate net salary from a gross salary or daily earnings",
	Example: `  salary-calculator calculate --gross 5000
  salary-calculator calculate --daily 200 --days 21 --tax 12 --save`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			u, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			req := salary.CalculateRequest{
				InputType:   salary.InputGross,
				GrossSalary: decimal.NewFromFloat(calcGross),
				Rates:       calcRates.resolve(cmd.Flags(), deps.Calculator.DefaultRates()),
			}
			if cmd.Flags().Changed("daily") {
				req.InputType = salary.InputDaily
				req.DailyEarnings = decimal.NewFromFloat(calcDaily)
				req.WorkingDays = calcDays
			}

			calc, rates, err := deps.Calculator.Evaluate(req)
			if err != nil {
				return err
			}
			printBreakdown(cmd.OutOrStdout(), calc, rates)

			if !calcSave {
				return nil
			}
			entry, err := deps.History.Record(ctx, u.ID, calc, rates, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nCalculation saved (%s).\n", entry.ID)
			return nil
		})
	},
}

func printBreakdown(w io.Writer, calc salary.Calculation, rates salary.DeductionRates) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Gross Salary\t%s\t\n", salary.FormatCurrency(calc.GrossSalary))
	// deductions are shown as withdrawals; a negative rate shows as a credit
	fmt.Fprintf(tw, "Tax (%s%%)\t%s\t\n", rates.Tax.String(), salary.FormatCurrency(calc.TaxAmount.Neg()))
	fmt.Fprintf(tw, "Retirement (%s%%)\t%s\t\n", rates.Retirement.String(), salary.FormatCurrency(calc.RetirementAmount.Neg()))
	fmt.Fprintf(tw, "Insurance (%s%%)\t%s\t\n", rates.Insurance.String(), salary.FormatCurrency(calc.InsuranceAmount.Neg()))
	fmt.Fprintf(tw, "Total Deductions\t%s\t\n", salary.FormatCurrency(calc.TotalDeductions.Neg()))
	fmt.Fprintf(tw, "Net Salary\t%s\t\n", salary.FormatCurrency(calc.NetSalary))
	_ = tw.Flush()
}

func init() {
	f := calculateCmd.Flags()
	f.Float64VarP(&calcGross, "gross", "g", 0, "monthly gross salary")
	f.Float64VarP(&calcDaily, "daily", "d", 0, "daily earnings")
	f.IntVar(&calcDays, "days", 22, "working days, used with --daily")
	f.BoolVarP(&calcSave, "save", "s", false, "save the calculation to history")
	calcRates.register(f)
}
