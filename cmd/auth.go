package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/salary-calculator/internal/auth"
	"github.com/frahmantamala/salary-calculator/internal/user"
	"github.com/spf13/cobra"
)

var (
	registerForm auth.RegisterDTO
	registerRole string
	loginForm    auth.LoginDTO
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			form := registerForm
			form.Role = user.Role(registerRole)

			u, err := deps.Auth.Register(ctx, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Signed in as %s (%s).\n", u.FullName(), u.Username, u.Role)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to an existing account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			u, err := deps.Auth.Login(ctx, loginForm)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s).\n", u.Username, u.Role)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			if err := deps.Auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDependencies(cmd.Context(), func(_ context.Context, deps *Dependencies) error {
			u, err := deps.Auth.Current()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", u.Username, u.FullName(), u.Role)
			return nil
		})
	},
}

func init() {
	f := registerCmd.Flags()
	f.StringVarP(&registerForm.Username, "username", "u", "", "username")
	f.StringVarP(&registerForm.Password, "password", "p", "", "password, at least 4 characters")
	f.StringVar(&registerForm.Name, "name", "", "first name")
	f.StringVar(&registerForm.Surname, "surname", "", "last name")
	f.StringVar(&registerRole, "role", string(user.RoleIndividual), "account type: company or individual")

	lf := loginCmd.Flags()
	lf.StringVarP(&loginForm.Username, "username", "u", "", "username")
	lf.StringVarP(&loginForm.Password, "password", "p", "", "password")
}
