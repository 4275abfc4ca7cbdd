// Package migrations embeds the schema applied by postgres.Migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
