package cmd

import (
	"github.com/perchapp/cli/pkg/service"
	"github.com/spf13/cobra"
)

var loginEmail string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Log in, log out, and inspect the current session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Perch",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewAuthService()
		return svc.Login(loginEmail)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewAuthService()
		return svc.Logout()
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewAuthService()
		return svc.WhoAmI()
	},
}

func init() {
	authLoginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted if omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
}
