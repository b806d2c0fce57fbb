// Package presentation parses a presentation document into a numbered slide
// tree and resolves the media its slides reference.
//
// Parsing is synchronous and performs no I/O: the YAML body is decoded, the
// meta block validated, and every slide entry normalized by its master.
// Resolve then fetches the collected media URIs through a resolver and runs
// the post-resolution hooks of each slide in document order.
package presentation
