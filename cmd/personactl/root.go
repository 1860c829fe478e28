package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "personactl",
	Short: "Persona context-scoped identity server",
	Long: `personactl manages the Persona identity server.

Persona stores one identity per (user, context, locale) and discloses
identity fields according to the identity's visibility, the caller's
role and per-field permission rules.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
