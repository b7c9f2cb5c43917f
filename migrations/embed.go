// Package migrations holds the versioned SQL schema for the waitlist and
// feature_requests tables.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
