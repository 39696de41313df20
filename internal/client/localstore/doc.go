// Package localstore persists client state as string key/value pairs.
//
// Two implementations are provided:
//   - SQLiteStore: a table in a local SQLite file (modernc.org/sqlite), schema
//     managed by embedded goose migrations. Multi-key writes run in one
//     transaction via dbx.WithTx.
//   - MemoryStore: a mutex-guarded map for ephemeral sessions and tests.
//
// Missing keys are not errors: Get reports them with ok == false.
package localstore
