// Package migrations embeds the goose SQL migrations for the taskboard
// schema. They are run at startup by the repository manager.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
