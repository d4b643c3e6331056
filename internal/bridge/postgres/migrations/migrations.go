// Package migrations embeds the PostgreSQL schema of the shared bridge.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
