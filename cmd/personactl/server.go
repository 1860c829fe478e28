package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/personahq/persona/pkg/audit"
	"github.com/personahq/persona/pkg/config"
	"github.com/personahq/persona/pkg/db"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Persona application server",
	Long: `Run the Persona application server

To run the server requires the environment variables PERSONA_TOKEN_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		tokenKeyB64, ok := os.LookupEnv("PERSONA_TOKEN_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "PERSONA_TOKEN_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		signingKey, err := base64.StdEncoding.DecodeString(tokenKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad PERSONA_TOKEN_KEY:", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}
		audit.SetEnabled(cfg.AuditEnabled)

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, cfg, signingKey, host, port)

		endpoints.RegisterAll(s)

		// Pick up config file edits without a restart.
		stopWatch, err := config.Watch(func(reloaded *config.PersonaConfig) {
			audit.SetEnabled(reloaded.AuditEnabled)
			log.Println("Configuration reloaded")
		})
		if err != nil {
			log.Printf("Config watch disabled: %v", err)
		} else {
			defer func() { _ = stopWatch() }()
		}

		// `personactl configuration apply` sends SIGHUP.
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		go func() {
			for range hup {
				if err := config.Reload(); err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				audit.SetEnabled(config.Get().AuditEnabled)
				log.Println("Configuration reloaded")
			}
		}()

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
