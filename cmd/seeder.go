package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/auth"
	"github.com/frahmantamala/salary-calculator/internal/employee"
	"github.com/frahmantamala/salary-calculator/internal/user"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const (
	demoUsername = "demo"
	demoPassword = "demo1234"
)

var seedEmployees int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with a demo company and employees",
	Long: `Create (or sign in as) the demo company account "demo" / "demo1234" and
add randomly generated employees to it. The demo account stays signed in.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			company, err := signInDemoCompany(ctx, deps.Auth)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s).\n", company.Username, company.Role)

			if clearData {
				removed, err := clearEmployees(ctx, deps.Employees, company)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d employees.\n", removed)
			}

			gofakeit.Seed(time.Now().UnixNano())
			for i := 0; i < seedEmployees; i++ {
				emp, err := deps.Employees.Create(ctx, company, fakeEmployee(i))
				if err != nil {
					return fmt.Errorf("failed to seed employee: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded employee: %s\n", emp.FullName())
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Demo data seeded successfully")
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedEmployees, "employees", "n", 5, "number of employees to generate")
}

func signInDemoCompany(ctx context.Context, svc *auth.Service) (*user.User, error) {
	u, err := svc.Register(ctx, auth.RegisterDTO{
		Username: demoUsername,
		Password: demoPassword,
		Name:     "Demo",
		Surname:  "Company",
		Role:     user.RoleCompany,
	})
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, internal.ErrUsernameTaken) {
		return nil, err
	}

	u, err = svc.Login(ctx, auth.LoginDTO{Username: demoUsername, Password: demoPassword})
	if err != nil {
		return nil, fmt.Errorf("demo account exists with another password: %w", err)
	}
	if !u.IsCompany() {
		return nil, internal.ErrCompanyRequired
	}
	return u, nil
}

func clearEmployees(ctx context.Context, svc *employee.Service, company *user.User) (int, error) {
	employees, err := svc.List(ctx, company)
	if err != nil {
		return 0, err
	}
	for _, e := range employees {
		if err := svc.Delete(ctx, company, e.ID); err != nil {
			return 0, err
		}
	}
	return len(employees), nil
}

// fakeEmployee alternates between monthly and daily paid employees.
func fakeEmployee(i int) employee.EmployeeDTO {
	dto := employee.EmployeeDTO{
		Name:    gofakeit.FirstName(),
		Surname: gofakeit.LastName(),
	}
	if i%2 == 0 {
		dto.GrossSalary = decimal.NewFromInt(int64(gofakeit.Number(25, 120) * 100))
	} else {
		dto.DailyEarnings = decimal.NewFromInt(int64(gofakeit.Number(80, 400)))
		dto.WorkingDays = gofakeit.Number(18, 23)
	}
	return dto
}
