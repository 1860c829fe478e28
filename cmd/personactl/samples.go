package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/personahq/persona/pkg/db"
	"github.com/personahq/persona/pkg/model"
	storegorm "github.com/personahq/persona/pkg/server/store/gorm"
)

var sampleNames = [][2]string{
	{"John", "Doe"}, {"Jane", "Smith"}, {"Alex", "Johnson"},
	{"Maria", "Garcia"}, {"David", "Brown"}, {"Sarah", "Wilson"},
	{"Michael", "Taylor"}, {"Emily", "Anderson"}, {"Robert", "Thomas"},
	{"Lisa", "Jackson"},
}

var sampleVisibilities = []model.Visibility{
	model.VisibilityPublic,
	model.VisibilityFriends,
	model.VisibilityPrivate,
	model.VisibilityOrganization,
}

// samplesCmd represents the samples command
var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Create sample identity data for testing",
	Long: `Create sample identity data for testing.

Each sample user gets an API key (printed once) and three identities,
one each for the legal, display and social contexts.

Example:
  personactl samples
  personactl samples --users 10`,
	Run: func(cmd *cobra.Command, args []string) {
		count, _ := cmd.Flags().GetInt("users")
		if err := createSamples(count); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create samples: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully created sample data for %d users\n", count)
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)
	samplesCmd.Flags().Int("users", 5, "Number of users to create")
}

func createSamples(count int) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	users := storegorm.NewUsersStore(database)
	identities := storegorm.NewIdentitiesStore(database)

	contexts := []model.Context{model.ContextLegal, model.ContextDisplay, model.ContextSocial}

	for i := 0; i < count; i++ {
		username := fmt.Sprintf("user%d", i+1)
		name := sampleNames[i%len(sampleNames)]

		if _, err := users.GetByUsername(username); err == nil {
			fmt.Printf("User %s already exists, skipping\n", username)
			continue
		}

		apiKey, err := model.GenerateAPIKey()
		if err != nil {
			return fmt.Errorf("failed to generate API key: %w", err)
		}

		user := &model.User{
			Username:  username,
			Email:     username + "@example.com",
			FirstName: name[0],
			LastName:  name[1],
			IsActive:  true,
		}
		if err := users.Create(user, model.RoleUser, apiKey); err != nil {
			return fmt.Errorf("failed to create %s: %w", username, err)
		}
		fmt.Printf("Created user %s (API key: %s)\n", username, apiKey)

		for j, context := range contexts {
			identity := &model.Identity{
				UserID:     user.ID,
				Context:    context,
				Locale:     model.DefaultLocale,
				GivenName:  user.FirstName,
				FamilyName: user.LastName,
				Email:      user.Email,
				Visibility: sampleVisibilities[(i+j)%len(sampleVisibilities)],
				IsPrimary:  j == 0,
				IsActive:   true,
				Bio:        fmt.Sprintf("Sample bio for %s context", context),
			}
			if context == model.ContextSocial {
				identity.CustomAttributes = model.JSONMap{"hobby": "Reading"}
			}
			if err := identities.Create(identity); err != nil {
				return fmt.Errorf("failed to create %s identity for %s: %w", context, username, err)
			}
			fmt.Printf("Created %s identity for %s\n", context, username)
		}
	}

	return nil
}
