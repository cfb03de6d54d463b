package configs

// SQLite configures the local file database used by the CLI and by small
// single-node deployments.
type SQLite struct {
	// Path is the database file. Parent directories are created on open.
	Path string `env:"PATH" envDefault:"campaign_records.db"`
	// RunMigrations applies the SQLite migrations before opening.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`
}
