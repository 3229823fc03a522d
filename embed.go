// Package urix exposes repo-level embedded assets, currently the database
// migrations applied by the migrate command.
package urix

import "embed"

// Migrations contains the goose SQL migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS
