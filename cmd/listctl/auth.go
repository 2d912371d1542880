package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	authCmd := &cobra.Command{Use: "auth", Short: "Account operations"}

	var email, password, name string
	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"email": email, "password": password}
			if name != "" {
				payload["displayName"] = name
			}
			resp, err := newClient().R().SetBody(payload).Post("/api/auth/signup")
			return printResult(resp, err)
		},
	}
	signupCmd.Flags().StringVarP(&email, "email", "e", "", "Email (required)")
	signupCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	signupCmd.Flags().StringVarP(&name, "name", "n", "", "Display name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	authCmd.AddCommand(signupCmd)

	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"email": loginEmail, "password": loginPassword}
			resp, err := newClient().R().SetBody(payload).Post("/api/auth/login")
			return printResult(resp, err)
		},
	}
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	authCmd.AddCommand(loginCmd)

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			resp, err := newClient().R().Get("/api/auth/me")
			return printResult(resp, err)
		},
	}
	authCmd.AddCommand(meCmd)

	rootCmd.AddCommand(authCmd)
}
