// Package mediauri parses and composes media URIs of the form
// `scheme:authority[#fragment]`.
//
// Two schemes are recognized: `ref` (a human readable reference such as
// `ref:Beethoven_Fuer-Elise`) and `uuid`. The fragment is returned verbatim so
// the consumer can interpret it as a sample id (`#complete`) or a multipart
// range (`#7-9,10-11`). The package also normalizes the "fuzzy" URI shapes a
// presentation field may hold (a string, a `{uri, title}` map, or a list of
// either) and walks nested catalog records for linked URIs.
package mediauri
