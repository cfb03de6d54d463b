package configs

// IDs configures campaign ID generation. Suffix is "hash" (derived from the
// criteria) or "random". MaxAttempts bounds regeneration after a collision.
type IDs struct {
	Suffix      string `env:"SUFFIX" envDefault:"hash"`
	MaxAttempts int    `env:"MAX_ATTEMPTS" envDefault:"5"`
}
