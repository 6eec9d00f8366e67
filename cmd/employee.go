package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/frahmantamala/salary-calculator/internal/employee"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type employeeFlags struct {
	name, surname string
	gross, daily  float64
	days          int
}

func (e *employeeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&e.name, "name", "", "first name")
	fs.StringVar(&e.surname, "surname", "", "last name")
	fs.Float64VarP(&e.gross, "gross", "g", 0, "monthly gross salary")
	fs.Float64VarP(&e.daily, "daily", "d", 0, "daily earnings, used when no gross is given")
	fs.IntVar(&e.days, "days", 0, "working days (default from config)")
}

func (e *employeeFlags) dto() employee.EmployeeDTO {
	return employee.EmployeeDTO{
		Name:          e.name,
		Surname:       e.surname,
		GrossSalary:   decimal.NewFromFloat(e.gross),
		DailyEarnings: decimal.NewFromFloat(e.daily),
		WorkingDays:   e.days,
	}
}

var (
	employeeAddForm    employeeFlags
	employeeUpdateForm employeeFlags
	employeeCalcRates  rateFlags
	employeeCalcSave   bool
)

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"employees"},
	Short:   "Manage the employees of a company account",
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			company, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			employees, err := deps.Employees.List(ctx, company)
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No employees yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tGROSS\tDAYS\tNET")
			rates := deps.Calculator.DefaultRates()
			for _, e := range employees {
				calc := salary.Calculate(e.GrossSalary, rates)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					e.ID, e.FullName(),
					salary.FormatCurrency(e.GrossSalary), e.WorkingDays,
					salary.FormatCurrency(calc.NetSalary))
			}
			return tw.Flush()
		})
	},
}

var employeeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an employee",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			company, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			emp, err := deps.Employees.Create(ctx, company, employeeAddForm.dto())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) at %s.\n", emp.FullName(), emp.ID, salary.FormatCurrency(emp.GrossSalary))
			return nil
		})
	},
}

var employeeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace an employee's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			company, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			emp, err := deps.Employees.Update(ctx, company, args[0], employeeUpdateForm.dto())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s).\n", emp.FullName(), emp.ID)
			return nil
		})
	},
}

var employeeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			company, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			if err := deps.Employees.Delete(ctx, company, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Employee deleted.")
			return nil
		})
	},
}

var employeeCalculateCmd = &cobra.Command{
	Use:   "calculate <id>",
	Short: "Show an employee's salary breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			company, err := deps.Auth.Current()
			if err != nil {
				return err
			}

			result, err := deps.Employees.Calculate(ctx, company, args[0], employee.CalculateDTO{
				Rates: employeeCalcRates.resolve(cmd.Flags(), deps.Calculator.DefaultRates()),
				Save:  employeeCalcSave,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", result.Employee.FullName())
			printBreakdown(cmd.OutOrStdout(), result.Calculation, result.DeductionRates)
			if result.History != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\nCalculation saved (%s).\n", result.History.ID)
			}
			return nil
		})
	},
}

func init() {
	employeeAddForm.register(employeeAddCmd.Flags())
	employeeUpdateForm.register(employeeUpdateCmd.Flags())

	employeeCalcRates.register(employeeCalculateCmd.Flags())
	employeeCalculateCmd.Flags().BoolVarP(&employeeCalcSave, "save", "s", false, "save the calculation to history")

	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeAddCmd)
	employeeCmd.AddCommand(employeeUpdateCmd)
	employeeCmd.AddCommand(employeeDeleteCmd)
	employeeCmd.AddCommand(employeeCalculateCmd)
}
