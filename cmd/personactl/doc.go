// Package main provides personactl, the CLI for the Persona identity server.
//
// Persona is a context-scoped identity service. Users carry multiple
// identities, one per (context, locale) pair, and other callers see a
// filtered view of each identity driven by visibility levels, roles and
// per-field permission rules.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: storage interfaces and GORM implementations
//   - pkg/resolver: context/locale identity resolution
//   - pkg/disclosure: field-level disclosure filtering
//   - pkg/model: database models
//   - pkg/token: access token issuing and parsing
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	personactl db migrate
//
//	# Create an admin user (the API key is printed once)
//	personactl user create admin --role admin
//
//	# Start the server
//	personactl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - PERSONA_TOKEN_KEY: Base64-encoded HMAC key for signing access tokens
//   - PERSONA_CONFIG_PATH: Config file location (default: /etc/persona/persona.yml)
//   - PERSONA_LOG_LEVEL: Set to "debug" for SQL query logging
//   - PORT: Server port (default: 8000)
package main
