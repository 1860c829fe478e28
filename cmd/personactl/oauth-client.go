package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/personahq/persona/pkg/db"
	"github.com/personahq/persona/pkg/model"
	storegorm "github.com/personahq/persona/pkg/server/store/gorm"
)

// oauthClientCmd represents the oauth-client command
var oauthClientCmd = &cobra.Command{
	Use:   "oauth-client",
	Short: "Manage OAuth relying parties",
	Long:  `Manage the OAuth client applications allowed to run the authorization flow.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'oauth-client' requires a subcommand (create)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// oauthClientCreateCmd represents the oauth-client create command
var oauthClientCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register an OAuth client application",
	Long: `Register an OAuth client application.

The client id and secret are printed once; the secret is required at
the token endpoint and cannot be recovered later.

Example:
  personactl oauth-client create "Demo RP" --redirect-uri http://localhost:8080/oauth/callback/`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		redirectURI, _ := cmd.Flags().GetString("redirect-uri")
		clientID, _ := cmd.Flags().GetString("client-id")

		client, err := createOAuthClient(args[0], clientID, redirectURI)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create OAuth client: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created OAuth client '%s'\n", client.Name)
		fmt.Printf("Client ID: %s\n", client.ClientID)
		fmt.Printf("Client Secret: %s\n", client.Secret)
		fmt.Printf("Redirect URI: %s\n", client.RedirectURI)
	},
}

func init() {
	rootCmd.AddCommand(oauthClientCmd)
	oauthClientCmd.AddCommand(oauthClientCreateCmd)
	oauthClientCreateCmd.Flags().String("redirect-uri", "http://localhost:8080/oauth/callback/", "Redirect URI")
	oauthClientCreateCmd.Flags().String("client-id", "", "Client ID (default: generated)")
}

func createOAuthClient(name, clientID, redirectURI string) (*model.OAuthClient, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}
	oauth := storegorm.NewOAuthStore(database)

	if clientID == "" {
		clientID = uuid.NewString()
	}
	if _, err := oauth.GetClient(clientID); err == nil {
		return nil, fmt.Errorf("client '%s' already exists", clientID)
	}

	client := &model.OAuthClient{
		ClientID:    clientID,
		Secret:      uuid.NewString(),
		Name:        name,
		RedirectURI: redirectURI,
	}
	if err := oauth.CreateClient(client); err != nil {
		return nil, err
	}
	return client, nil
}
