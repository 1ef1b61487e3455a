package migrations

import "embed"

// Files holds the forward-only SQL migrations for the diff history database.
//
//go:embed *.sql
var Files embed.FS
