package store

// HealthStore abstracts liveness checks against the backing database.
type HealthStore interface {
	// Ping verifies the database connection is alive.
	Ping() error
}
