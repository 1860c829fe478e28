package db

import "embed"

// Migrations holds the SQL migration files, compiled into the binary for
// the embed_migrations build.
//
//go:embed migrations
var Migrations embed.FS
