// Package migrations embeds the SQL schema for the postgres and sqlite stores.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
