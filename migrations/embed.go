package migrations

import "embed"

// Files holds the forward-only SQL migrations compiled into the binary.
// New migrations are added as NNN_description.sql and never edited after
// they ship.
//
//go:embed *.sql
var Files embed.FS
