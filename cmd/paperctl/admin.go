package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"questionbank/internal/repository"
)

func init() {
	AdminCommand.AddCommand(&AdminAddCommand)
	AdminCommand.AddCommand(&AdminRemoveCommand)
	AdminCommand.AddCommand(&AdminListCommand)
	RootCmd.AddCommand(&AdminCommand)
}

var AdminCommand = cobra.Command{
	Use:   "admin",
	Short: "Manage the admin allow-list",
	Long:  "Manage the admin allow-list. Only listed emails may use the admin console.",
}

var AdminAddCommand = cobra.Command{
	Use:   "add <email>",
	Short: "Allow an email to use the admin console",
	Long:  "Allow an email to use the admin console",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		a, err := repository.NewAdminRepository(db).Add(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%s is already an admin", args[0])
			}
			return err
		}
		cmd.Println("added", a.Email)
		return nil
	},
}

var AdminRemoveCommand = cobra.Command{
	Use:   "remove <email>",
	Short: "Remove an email from the allow-list",
	Long:  "Remove an email from the allow-list. Existing sessions are refused on their next request.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		removed, err := repository.NewAdminRepository(db).Remove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("%s is not an admin", args[0])
		}
		cmd.Println("removed", args[0])
		return nil
	},
}

var AdminListCommand = cobra.Command{
	Use:   "list",
	Short: "List the admin allow-list",
	Long:  "List the admin allow-list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		admins, err := repository.NewAdminRepository(db).List(cmd.Context())
		if err != nil {
			return err
		}
		for _, a := range admins {
			cmd.Println(a.Email)
		}
		return nil
	},
}
