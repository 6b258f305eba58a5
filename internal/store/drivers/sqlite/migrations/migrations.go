// Package migrations embeds the SQL migration files so they are compiled
// into the binary and applied through golang-migrate at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
