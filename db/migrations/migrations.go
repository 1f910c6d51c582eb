// Package migrations embeds the Postgres schema migrations. The
// golang-migrate iofs driver reads these files when `adpace migrate` runs.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version the binary expects.
const Version = 1
