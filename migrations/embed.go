package migrations

import "embed"

// Files holds the forward-only SQL migrations compiled into the binary.
// File names follow NNNN_description.sql; ordering is numeric.
//
//go:embed *.sql
var Files embed.FS
