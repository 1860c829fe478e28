package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/personahq/persona/pkg/db"
	"github.com/personahq/persona/pkg/model"
	storegorm "github.com/personahq/persona/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user account",
	Long: `Create a user account.

The account gets a role row and a freshly generated API key. The API
key is written to STDOUT exactly once; it cannot be retrieved in this
form again after rotation.

Example:
  personactl user create alice
  personactl user create admin --role admin --email admin@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		roleName, _ := cmd.Flags().GetString("role")
		email, _ := cmd.Flags().GetString("email")

		apiKey, err := createUser(username, roleName, email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created user '%s'\n", username)
		fmt.Printf("API key for %s: %s\n", username, apiKey)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("role", "r", "user", "Role (admin, manager, user, viewer)")
	userCreateCmd.Flags().StringP("email", "e", "", "Email address")
}

func createUser(username, roleName, email string) (string, error) {
	role, err := model.RoleString(roleName)
	if err != nil {
		return "", fmt.Errorf("unknown role %q", roleName)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}
	users := storegorm.NewUsersStore(database)

	if _, err := users.GetByUsername(username); err == nil {
		return "", fmt.Errorf("user '%s' already exists", username)
	}

	apiKey, err := model.GenerateAPIKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		IsActive: true,
	}
	if err := users.Create(user, role, apiKey); err != nil {
		return "", err
	}

	return apiKey, nil
}
