// Package core provides the business logic for migrating Adalo CSV exports
// into a destination table store.
//
// The package has no transport dependencies. Any [Store] implementation can
// receive the records: the PostgREST API, a direct Postgres connection,
// SQLite, or an in-memory fake.
//
// # Entity Registry
//
// Each export is declared once, at init time, with [Register]. An
// [EntityDefinition] is pure data: the destination table, the default file
// name, and one [Mapping] per destination field:
//
//	core.Register(core.EntityDefinition{
//	    Key:   "tags",
//	    Table: "tags",
//	    File:  "Tags (2).csv",
//	    Order: 20,
//	    Fields: []core.Mapping{
//	        {Field: "id", Column: "ID", Coerce: core.Number},
//	        {Field: "name", Column: "Name", Coerce: core.Raw},
//	    },
//	})
//
// # Loading
//
// [Loader.Load] moves one file into its table:
//
//  1. The file is read and every row is coerced into a [Record]
//  2. Optional [Lookup] enrichment resolves references against earlier tables
//  3. Records are sent in batches of [DefaultBatchSize], strictly in sequence
//
// A failed batch aborts the rest of the file. Batches already sent are not
// rolled back.
//
// [Migrator.Run] calls the loader for every entity in dependency order. A
// failed entity type never stops the ones after it.
//
// # Coercion
//
// Coercers turn raw cells into typed values and never fail. Unusable input
// becomes nil. Only file, header, and delivery problems are errors; see
// [ErrInput] and [ErrDelivery].
//
// # Error Handling
//
// Technical errors are mapped to operator hints using [MapError]:
//
//   - DB001-DB008: Destination errors (duplicates, constraints, schema)
//   - NET001-NET004: Connectivity errors (host, timeout, credential)
//   - MIG001-MIG002: Export shape errors (missing columns, stray quotes)
//   - FILE001-FILE002: File errors (missing, malformed)
package core
