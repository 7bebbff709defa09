// Package assets embeds the SQL migrations for the round ledger.
package assets

import "embed"

// Migrations holds sql/*.sql, applied in lexical order.
//
//go:embed sql/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the scripts.
const MigrationsDir = "sql"
