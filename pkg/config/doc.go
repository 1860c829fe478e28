// Package config provides configuration management for the persona server.
//
// This package handles loading and validating server configuration
// from environment variables and configuration files.
//
// # Configuration Sources
//
//   - persona.yml under PERSONA_CONFIG_PATH (optional)
//   - PERSONA_* environment variables (override file values)
//
// # Key Configuration Options
//
//   - PERSONA_TRUSTED_PROXIES: CIDR ranges allowed to set X-Forwarded-For
//   - PERSONA_DEFAULT_LOCALE: locale assumed when a request names none
//   - PERSONA_TOKEN_TTL: access-token lifetime in seconds
//   - DATABASE_URL: database connection
//   - PORT: server listen port
package config
