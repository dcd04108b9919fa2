// Package database manages the PostgreSQL connection pool.
//
// DivScout uses a single Postgres database holding companies, the
// dividend timeline, and the collection log.
package database
