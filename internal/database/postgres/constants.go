package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// PrefixMatchLimit caps how many rows a partial card ID lookup returns
const PrefixMatchLimit = 5
