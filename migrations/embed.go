// Package migrations carries the SQL schema so the binary can migrate
// without the source tree on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
