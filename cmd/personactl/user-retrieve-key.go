package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/personahq/persona/pkg/db"
	storegorm "github.com/personahq/persona/pkg/server/store/gorm"
)

// userRetrieveKeyCmd represents the user retrieve-key command
var userRetrieveKeyCmd = &cobra.Command{
	Use:   "retrieve-key <username>",
	Short: "Retrieve a user's API key",
	Long: `Retrieve the API key for a user.

Example:
  personactl user retrieve-key alice`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, username := range args {
			apiKey, err := retrieveKey(username)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to retrieve key for %s: %v\n", username, err)
				os.Exit(1)
			}
			fmt.Println(apiKey)
		}
	},
}

func init() {
	userCmd.AddCommand(userRetrieveKeyCmd)
}

func retrieveKey(username string) (string, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}
	users := storegorm.NewUsersStore(database)

	user, err := users.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("user not found: %s", username)
	}

	apiKey, err := users.APIKey(user.ID)
	if err != nil {
		return "", fmt.Errorf("no API key found for user: %s", username)
	}

	return string(apiKey), nil
}
