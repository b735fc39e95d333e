// Package database provides SQLite-based storage for DesignLens.
//
// This package implements the AuditDB, which stores:
//   - The accumulated audit report per domain, as JSON
//   - Audit history for comparing a site's design over time
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// Reports are stored as opaque JSON rather than normalized tables: the
// accumulated report is always read and written whole, and its shape
// evolves with the analyzers. A schema migration per analyzer change
// would buy nothing.
package database
