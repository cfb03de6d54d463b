package migrations

import "embed"

// Postgres and SQLite embed the SQL migrations for each dialect. The
// golang-migrate library reads them through the iofs source driver.
var (
	//go:embed postgres/*.sql
	Postgres embed.FS

	//go:embed sqlite/*.sql
	SQLite embed.FS
)

// Version is the schema version both dialects are migrated to.
const Version = 1
