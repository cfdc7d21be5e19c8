package main

import (
	"errors"

	"github.com/spf13/cobra"

	"questionbank/internal/modules/auth"
	jwtsvc "questionbank/internal/pkg/jwt"
	"questionbank/internal/repository"
)

func init() {
	UserCommand.PersistentFlags().String("password", "", "password of the credential")

	UserCommand.AddCommand(&CreateUserCommand)
	UserCommand.AddCommand(&SetPasswordCommand)
	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "Manage email/password credentials",
	Long:  "Manage email/password credentials. A credential alone does not grant admin access.",
}

func authService() (*auth.Service, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	return auth.NewService(
		repository.NewAuthUserRepository(db),
		repository.NewSessionRepository(db),
		jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL),
	), nil
}

func passwordFlag(cmd *cobra.Command) (string, error) {
	password := cmd.Flag("password").Value.String()
	if password == "" {
		return "", errors.New("--password is required")
	}
	return password, nil
}

var CreateUserCommand = cobra.Command{
	Use:   "create <email>",
	Short: "Create a credential",
	Long:  "Create a credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFlag(cmd)
		if err != nil {
			return err
		}
		svc, err := authService()
		if err != nil {
			return err
		}
		u, err := svc.CreateUser(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		cmd.Println("created", u.Email)
		return nil
	},
}

var SetPasswordCommand = cobra.Command{
	Use:   "set-password <email>",
	Short: "Replace the password of a credential",
	Long:  "Replace the password of a credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFlag(cmd)
		if err != nil {
			return err
		}
		svc, err := authService()
		if err != nil {
			return err
		}
		if err := svc.SetPassword(cmd.Context(), args[0], password); err != nil {
			return err
		}
		cmd.Println("password updated for", args[0])
		return nil
	},
}
