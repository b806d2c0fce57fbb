// Package catalog supplies the media catalog the resolver looks assets up in.
//
// Three backends implement Client:
//   - SQLiteStore keeps imported records in a local SQLite database
//   - DirClient reads YAML sidecar files (`<media file>.yml`) straight from a media directory
//   - HTTPClient queries a remote `baldr serve` instance
//
// Import walks a media directory, completes sidecars that lack a uuid or ref and
// upserts the records into a SQLiteStore under an exclusive file lock.
package catalog
