// Package migrations embeds the card store schema.
package migrations

import "embed"

// FS holds the SQL migrations for the card store.
//
//go:embed *.sql
var FS embed.FS
