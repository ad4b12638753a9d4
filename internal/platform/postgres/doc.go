// Package postgres provides PostgreSQL implementations of the store
// interfaces used by the tutoring service. All stores accept a
// store.DBTX so they work over a plain connection pool or inside a
// transaction, and translate backend errors through MapError into the
// store error taxonomy.
package postgres
