// Package migrations embeds the SQL migration files into the binary.
//
// Files are grouped per database driver and follow the golang-migrate
// naming scheme: {version}_{title}.up.sql / {version}_{title}.down.sql.
package migrations

import "embed"

// FS holds the migrations for every supported driver, one directory per driver
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
