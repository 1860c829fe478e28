package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/personahq/persona/pkg/db"
	"github.com/personahq/persona/pkg/model"
	storegorm "github.com/personahq/persona/pkg/server/store/gorm"
)

// userSetRoleCmd represents the user set-role command
var userSetRoleCmd = &cobra.Command{
	Use:   "set-role <username> <role>",
	Short: "Change a user's role",
	Long: `Change a user's role.

Example:
  personactl user set-role alice manager`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := setUserRole(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set role: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Set role of '%s' to %s\n", args[0], args[1])
	},
}

func init() {
	userCmd.AddCommand(userSetRoleCmd)
}

func setUserRole(username, roleName string) error {
	role, err := model.RoleString(roleName)
	if err != nil {
		return fmt.Errorf("unknown role %q", roleName)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	users := storegorm.NewUsersStore(database)

	user, err := users.GetByUsername(username)
	if err != nil {
		return fmt.Errorf("user not found: %s", username)
	}

	return users.SetRole(user.ID, role)
}
