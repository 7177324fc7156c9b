// Package migrations embeds the SQL migration files so they can be applied by
// the goose provider at server start, from cmd/migrate and in tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
