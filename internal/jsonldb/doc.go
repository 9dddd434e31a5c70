// Package jsonldb provides a generic, concurrent-safe, JSONL-backed record store.
//
// # Overview
//
// The package is layered, leaves first:
//
//   - [Lines] reads and writes a file holding one JSON record per line: append
//     for creation, full rewrite for anything else.
//   - [Counter] hands out monotonically increasing int64 ids persisted in a
//     single-line file.
//   - [WithBackup] copies a file to a sibling "<base>_COPY.txt" before a
//     destructive rewrite and removes the copy once the rewrite verified.
//   - [Table] composes the three into CRUD over any [Row] type, addressed by a
//     [Key] (numeric id or case-insensitive business code).
//
// # Concurrency: Pessimistic Locking
//
// Table holds a single mutex for every operation, including the
// read-filter-rewrite sequences updates and deletes require. [Table.Do] holds
// the same lock across a caller-supplied sequence of [Tx] operations so that
// higher layers can compose several steps atomically. Counters have their own
// lock and are only entered while a Table lock is held, never the reverse.
//
// # File Format
//
// UTF-8 text, one JSON object per line, each line terminated by '\n'. Every
// line must decode; a malformed line is reported as [ErrCorrupt] instead of
// being skipped. Files must carry a "txt" or "json" extension.
package jsonldb
