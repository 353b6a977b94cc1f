package generator

// Config controls the behavior of the Stratified generator.
type Config struct {
	// Seed seeds the master random stream. Zero draws a random seed; the
	// seed in use is available from Stratified.Seed so a run can be
	// reproduced.
	Seed uint64

	// Workers is the maximum number of versions built concurrently.
	// Values below 1 mean sequential generation.
	Workers int
}

// DefaultConfig returns a Config with a random seed and a small worker pool.
func DefaultConfig() Config {
	return Config{
		Seed:    0,
		Workers: 4,
	}
}
