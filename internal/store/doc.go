// Package store implements SQLite persistence for users, shared content
// items and per-user engagement (likes and favorites).
//
// The package owns the database handle for its lifetime. Callers construct
// a [Store] once at startup via [Open] and reach the data exclusively
// through its repository interfaces ([Users], [Contents], [Likes],
// [Favorites]); no raw statements escape this package.
//
// # Schema migration
//
// [Migrate] converges the database to the target schema with idempotent
// steps: create-if-absent tables, introspection-guarded column retrofits,
// a transactional slug backfill for rows that predate the slug column, and
// uniqueness constraints built only after the backfill guarantees they can
// hold. A failing step aborts startup; the application never serves
// repository operations against a schema it cannot guarantee.
//
// # Degraded mode
//
// When the database cannot be opened at all, [Unavailable] supplies a
// fallback store: reads return a small fixed placeholder set or empty
// results, mutations fail explicitly with [shared.ErrStoreUnavailable].
// This keeps the surrounding system observable without pretending
// durability.
package store
