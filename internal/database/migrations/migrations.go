// Package migrations embeds the goose schema files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
