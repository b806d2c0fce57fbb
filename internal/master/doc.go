// Package master defines the contract between the presentation parser and the
// slide types ("masters") it dispatches to.
//
// A Master must report its name, display name and field definitions. Every
// other hook is optional and expressed as a small capability interface that
// the pipeline detects with a type assertion: short-form input, custom input
// normalization, media URI collection, title derivation, and step collection
// before and after media resolution. Masters are registered once in a
// Registry that is read-only afterwards.
package master
